package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"mu-bmd-pose/internal/bmd"
	"mu-bmd-pose/internal/logging"
	"mu-bmd-pose/internal/mathutil"
	"mu-bmd-pose/internal/postprocess"
	"mu-bmd-pose/internal/raster"
	"mu-bmd-pose/internal/skeleton"
)

// Config holds all shared, read-only resources for a batch run.
type Config struct {
	Hierarchy *skeleton.Hierarchy
	Source    skeleton.FrameSource
	Meshes    []bmd.Mesh // bind-space geometry, see skeleton.BindMeshes
	OutputDir string
	Render    raster.Options
	Workers   int
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Image   string     // path relative to OutputDir
	Root    [3]float64 // translation of bone 0 in model space
	Success bool
	Error   string
}

// Run renders frames with a worker pool. Every worker poses its own Resolver
// over the shared hierarchy, so frames never see each other's samples.
func Run(cfg Config, frames []int) []Result {
	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64
	log := logging.Logger()

	if cfg.Render.Fit.Empty() || cfg.Render.Fit == (mathutil.Bounds{}) {
		cfg.Render.Fit = FitFrames(cfg, frames)
	}

	start := time.Now()
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", total, "frames_per_sec", fmt.Sprintf("%.1f", rate))
				}
			}
		}
	}()

	work := make(chan int, max(cfg.Workers, 1)*2)
	var wg sync.WaitGroup
	for w := 0; w < max(cfg.Workers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := skeleton.NewResolver(cfg.Hierarchy)
			for idx := range work {
				results[idx] = renderFrame(cfg, res, frames[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range frames {
		work <- i
	}
	close(work)

	wg.Wait()
	close(done)

	return results
}

// FitFrames returns camera-space bounds covering every posed frame, so a
// sequence is framed once instead of per image.
func FitFrames(cfg Config, frames []int) mathutil.Bounds {
	res := skeleton.NewResolver(cfg.Hierarchy)
	fit := mathutil.EmptyBounds()
	for _, f := range frames {
		res.Load(cfg.Source, f)
		b := raster.Frame(skeleton.Deform(cfg.Meshes, res.AnimationTransforms()), cfg.Render.View)
		if b.Empty() {
			continue
		}
		fit.Extend(b.Min)
		fit.Extend(b.Max)
	}
	return fit
}

func renderFrame(cfg Config, res *skeleton.Resolver, frame int) Result {
	name := fmt.Sprintf("%04d.webp", frame)
	r := Result{Frame: frame, Image: name}

	res.Load(cfg.Source, frame)
	posed := skeleton.Deform(cfg.Meshes, res.AnimationTransforms())
	if cfg.Hierarchy.Len() > 0 {
		root := res.SingleBoneTransform(0).Col(3)
		r.Root = [3]float64{root[0], root[1], root[2]}
	}

	img := raster.Render(posed, cfg.Render)
	if cfg.Render.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Render.Size)
	}

	if err := writeWebP(filepath.Join(cfg.OutputDir, name), img); err != nil {
		r.Error = err.Error()
		logging.Logger().Warn("frame failed", "frame", frame, "err", err)
		return r
	}
	logging.Logger().Debug("frame written", "frame", frame, "path", name)
	r.Success = true
	return r
}

func writeWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("webp encode: %w", err)
	}
	return f.Close()
}
