package config

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pose.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func unset() Flags { return Flags{Action: -1, FirstFrame: -1} }

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{"model": "data/Sword01.bmd", "action": 2, "texture_dirs": ["a", "b"], "supersample": 3}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{ModelPath: "data/Sword01.bmd", Action: 2, TextureDirs: []string{"a", "b"}, Supersample: 3}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}

	if _, err := Load(writeConfig(t, `{"model": `)); err == nil {
		t.Errorf("Load() accepted malformed JSON")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Errorf("Load() of a missing file succeeded")
	}
}

func TestResolveDefaults(t *testing.T) {
	cfg := Config{ModelPath: filepath.Join("data", "Item", "Sword01.bmd")}
	cfg.Resolve(unset())

	if want := []string{filepath.Join("data", "Item")}; !reflect.DeepEqual(cfg.TextureDirs, want) {
		t.Errorf("TextureDirs = %v, want %v", cfg.TextureDirs, want)
	}
	if want := filepath.Join("data", "Item", "Sword01-frames"); cfg.OutputDir != want {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, want)
	}
	if cfg.RenderSize != 256 || cfg.Supersample != 2 || cfg.Workers != runtime.NumCPU() {
		t.Errorf("defaults = size %d ss %d workers %d", cfg.RenderSize, cfg.Supersample, cfg.Workers)
	}
	if cfg.Action != 0 || cfg.FirstFrame != 0 || cfg.FrameCount != 0 {
		t.Errorf("frame selection = %d %d %d, want zeros", cfg.Action, cfg.FirstFrame, cfg.FrameCount)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{
		ModelPath:   "a.bmd",
		TextureDirs: []string{"tex"},
		Action:      3,
		FirstFrame:  5,
		View:        "side",
		Workers:     2,
	}
	cfg.Resolve(Flags{
		ModelPath:  "b.bmd",
		TextureDir: "other",
		Action:     0,
		FirstFrame: -1,
		FrameCount: 4,
		Workers:    8,
	})

	if cfg.ModelPath != "b.bmd" || cfg.Action != 0 || cfg.FirstFrame != 5 || cfg.FrameCount != 4 {
		t.Errorf("Resolve() = %+v", cfg)
	}
	if cfg.View != "side" || cfg.Workers != 8 {
		t.Errorf("View, Workers = %q, %d, want side, 8", cfg.View, cfg.Workers)
	}
	if !reflect.DeepEqual(cfg.TextureDirs, []string{"other"}) {
		t.Errorf("TextureDirs = %v, want [other]", cfg.TextureDirs)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MU_POSE_MODEL", "env.bmd")
	t.Setenv("MU_POSE_TEXTURE_DIRS", "x,y")
	t.Setenv("MU_POSE_ACTION", "4")

	cfg := Config{ModelPath: "file.bmd", View: "front", Action: 1}
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	want := Config{ModelPath: "env.bmd", TextureDirs: []string{"x", "y"}, Action: 4, View: "front"}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("ApplyEnv() = %+v, want %+v", cfg, want)
	}

	t.Setenv("MU_POSE_WORKERS", "many")
	if err := cfg.ApplyEnv(); err == nil {
		t.Errorf("ApplyEnv() accepted a non-numeric worker count")
	}
}

func TestKeys(t *testing.T) {
	keys, err := (&Config{}).Keys()
	if err != nil || keys.HasLEA {
		t.Errorf("Keys() without key = %+v, %v", keys, err)
	}

	keys, err = (&Config{LEAKey: strings.Repeat("ff", 32)}).Keys()
	if err != nil || !keys.HasLEA || keys.LEA[5] != 0xff {
		t.Errorf("Keys() = %+v, %v", keys, err)
	}

	if _, err := (&Config{LEAKey: "abc"}).Keys(); err == nil {
		t.Errorf("Keys() accepted a short key")
	}
}
