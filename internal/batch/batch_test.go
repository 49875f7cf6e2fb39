package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"mu-bmd-pose/internal/anim"
	"mu-bmd-pose/internal/bmd"
	"mu-bmd-pose/internal/raster"
	"mu-bmd-pose/internal/skeleton"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	h, err := skeleton.NewHierarchy([]skeleton.BoneRecord{
		{Name: "Root", ID: 0, ParentID: skeleton.NoBone, Transform: mgl64.Ident4()},
	})
	if err != nil {
		t.Fatal(err)
	}

	src := anim.Static{}
	for f := 0; f < 3; f++ {
		s := skeleton.IdentitySample()
		s.Translation = mgl64.Vec3{float64(f), 0, 0}
		src.Set(f, 0, s)
	}

	return Config{
		Hierarchy: h,
		Source:    src,
		Meshes: []bmd.Mesh{{
			Verts: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Nodes: []int16{0, 0, 0},
			Tris:  []bmd.Triangle{{Polygon: 3, VI: [4]int16{0, 1, 2}}},
		}},
		OutputDir: t.TempDir(),
		Render:    raster.Options{Size: 32, Supersample: 2, View: mgl64.Ident3()},
		Workers:   2,
	}
}

func TestFitFramesCoversEveryFrame(t *testing.T) {
	cfg := testConfig(t)
	fit := FitFrames(cfg, []int{0, 1, 2})
	if fit.Min != (mgl64.Vec3{0, 0, 0}) || fit.Max != (mgl64.Vec3{3, 1, 0}) {
		t.Errorf("FitFrames() = %+v, want (0,0,0)-(3,1,0)", fit)
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	results := Run(cfg, []int{2, 0, 1})

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, want := range []int{2, 0, 1} {
		r := results[i]
		if !r.Success {
			t.Fatalf("frame %d failed: %s", r.Frame, r.Error)
		}
		if r.Frame != want {
			t.Errorf("results[%d].Frame = %d, want %d", i, r.Frame, want)
		}
		if r.Root != [3]float64{float64(want), 0, 0} {
			t.Errorf("frame %d root = %v", want, r.Root)
		}
		info, err := os.Stat(filepath.Join(cfg.OutputDir, r.Image))
		if err != nil || info.Size() == 0 {
			t.Errorf("frame %d image %s: %v", want, r.Image, err)
		}
	}
}

func TestManifest(t *testing.T) {
	results := []Result{
		{Frame: 0, Image: "0000.webp", Root: [3]float64{1, 2, 3}, Success: true},
		{Frame: 1, Image: "0001.webp", Error: "disk full"},
	}
	m := NewManifest("sword.bmd", 2, 5, results)

	if m.Frames[0].Image != "0000.webp" || m.Frames[1].Image != "" || m.Frames[1].Error != "disk full" {
		t.Errorf("NewManifest() frames = %+v", m.Frames)
	}

	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("WriteManifest() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Manifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Model != "sword.bmd" || got.Action != 2 || got.Bones != 5 || len(got.Frames) != 2 {
		t.Errorf("manifest = %+v", got)
	}
}
