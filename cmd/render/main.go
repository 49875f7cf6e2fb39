package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mu-bmd-pose/internal/anim"
	"mu-bmd-pose/internal/batch"
	"mu-bmd-pose/internal/bmd"
	"mu-bmd-pose/internal/config"
	"mu-bmd-pose/internal/filter"
	"mu-bmd-pose/internal/logging"
	"mu-bmd-pose/internal/mathutil"
	"mu-bmd-pose/internal/raster"
	"mu-bmd-pose/internal/skeleton"
	"mu-bmd-pose/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	model := flag.String("model", "", "BMD model to pose")
	textures := flag.String("textures", "", "Texture directory (default: model directory)")
	outputDir := flag.String("output", "", "Output directory (default: <model>-frames)")
	action := flag.Int("action", -1, "Action index (default: 0)")
	first := flag.Int("first", -1, "First frame (default: 0)")
	count := flag.Int("frames", 0, "Number of frames (default: every key of the action)")
	view := flag.String("view", "", "Camera: fallback, front or side")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	effects := flag.Bool("effects", false, "Keep glow and particle meshes")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()
	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{
		ModelPath:  *model,
		TextureDir: *textures,
		OutputDir:  *outputDir,
		Action:     *action,
		FirstFrame: *first,
		FrameCount: *count,
		View:       *view,
		Workers:    *workers,
		Effects:    *effects,
	})

	if cfg.ModelPath == "" {
		fmt.Fprintln(os.Stderr, "Error: no model. Use -model or config.json.")
		os.Exit(1)
	}

	keys, err := cfg.Keys()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, err := bmd.Parse(cfg.ModelPath, keys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	h, err := anim.HierarchyFromBMD(m.Bones)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	clip, err := anim.NewClip(m, cfg.Action)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	frames := frameRange(cfg.FirstFrame, cfg.FrameCount, clip.Frames())
	if len(frames) == 0 {
		fmt.Println("No frames to render.")
		os.Exit(0)
	}

	meshes := m.Meshes
	if !cfg.KeepEffects {
		var dropped int
		meshes, dropped = filter.WithoutEffects(meshes)
		if dropped > 0 {
			logging.Logger().Info("skipping effect meshes", "count", dropped)
		}
	}
	skeleton.BindMeshes(meshes, h)

	texIndex := texture.BuildIndex(cfg.TextureDirs...)
	fmt.Printf("Model: %s (meshes=%d bones=%d actions=%d)\n", m.Name, len(m.Meshes), h.Len(), len(m.Actions))
	fmt.Printf("Action %d: %d frames, Workers: %d, Textures: %d indexed\n", cfg.Action, len(frames), cfg.Workers, texIndex.Len())
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batch.Config{
		Hierarchy: h,
		Source:    clip,
		Meshes:    meshes,
		OutputDir: cfg.OutputDir,
		Render: raster.Options{
			Size:        cfg.RenderSize,
			Supersample: cfg.Supersample,
			View:        mathutil.ViewByName(cfg.View),
			Textures:    texture.NewCache(texIndex),
		},
		Workers: cfg.Workers,
	}, frames)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			if failed <= 20 {
				fmt.Printf("  frame %d: %s\n", r.Frame, r.Error)
			}
		}
	}
	fmt.Printf("Rendered: %d/%d\n", len(results)-failed, len(results))

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	manifest := batch.NewManifest(cfg.ModelPath, cfg.Action, h.Len(), results)
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// frameRange lists count frames from first; count 0 means through the last key.
// Frames past the last key wrap, since clips loop.
func frameRange(first, count, keys int) []int {
	if count <= 0 {
		count = keys - first
	}
	frames := make([]int, 0, max(count, 0))
	for f := first; f < first+count; f++ {
		frames = append(frames, f)
	}
	return frames
}
