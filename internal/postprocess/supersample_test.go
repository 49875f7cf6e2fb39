package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func TestDownsample(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	want := color.NRGBA{200, 40, 20, 255}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.SetNRGBA(x, y, want)
		}
	}

	got := Downsample(src, 4)
	if b := got.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("bounds = %v, want 4x4", b)
	}
	c := got.NRGBAAt(2, 2)
	if diff(c.R, want.R) > 2 || diff(c.G, want.G) > 2 || diff(c.B, want.B) > 2 || c.A != 255 {
		t.Errorf("pixel = %v, want about %v", c, want)
	}

	if small := Downsample(got, 4); small != got {
		t.Errorf("Downsample() to the same size copied the image")
	}
}

func TestDownsampleKeepsTransparentEdgesClean(t *testing.T) {
	// Left half opaque white, right half fully transparent black.
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}

	got := Downsample(src, 4)
	for x := 0; x < 4; x++ {
		c := got.NRGBAAt(x, 1)
		if c.A > 16 && c.R < 240 {
			t.Errorf("pixel %d = %v, dark fringe on a white edge", x, c)
		}
	}
}

func diff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
