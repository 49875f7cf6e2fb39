package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"mu-bmd-pose/internal/bmd"
	"mu-bmd-pose/internal/config"
	"mu-bmd-pose/internal/texture"
)

// texdump decodes every texture a model references and writes it as WebP,
// so missing or mis-wrapped OZJ/OZT files show up before a batch render.
func main() {
	textures := flag.String("textures", "", "Texture directory (default: model directory)")
	out := flag.String("out", "textures", "Output directory")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: texdump [-textures dir] [-out dir] model.bmd")
		os.Exit(2)
	}

	cfg := config.Config{}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Resolve(config.Flags{ModelPath: flag.Arg(0), TextureDir: *textures, Action: -1, FirstFrame: -1})
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
	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	idx := texture.BuildIndex(cfg.TextureDirs...)
	seen := make(map[string]bool)
	failed := 0
	for i, mesh := range m.Meshes {
		src, ok := idx.ResolvePath(mesh.TexPath)
		if !ok {
			fmt.Printf("MISS mesh %d: %s\n", i, mesh.TexPath)
			failed++
			continue
		}
		if seen[src] {
			continue
		}
		seen[src] = true

		if err := dump(src, *out); err != nil {
			fmt.Fprintf(os.Stderr, "ERR  mesh %d: %v\n", i, err)
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("\nDone with %d problem(s).\n", failed)
		os.Exit(1)
	}
	fmt.Println("\nDone. All textures extracted.")
}

func dump(src, outDir string) error {
	img, err := texture.LoadTexture(src)
	if err != nil {
		return err
	}
	base := filepath.Base(src)
	dst := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".webp")

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	b := img.Bounds()
	fmt.Printf("OK   %s -> %s  (%dx%d)\n", src, dst, b.Dx(), b.Dy())
	return nil
}
