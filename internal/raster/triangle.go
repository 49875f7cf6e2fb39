package raster

import (
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// screenVert is a projected vertex: pixel position, depth and texcoord.
type screenVert struct {
	X, Y, Z float64
	U, V    float64
}

// surface is what a triangle is painted with: a texture when UVs are usable,
// otherwise a flat color.
type surface struct {
	tex  *image.NRGBA
	flat [4]uint8
}

// rasterizeTriangle fills one flat-shaded triangle with depth testing.
// The hot loop allocates nothing.
func rasterizeTriangle(fb *FrameBuffer, v [3]screenVert, surf surface, lc *LightConfig) {
	e1 := mgl64.Vec3{v[1].X - v[0].X, v[1].Y - v[0].Y, v[1].Z - v[0].Z}
	e2 := mgl64.Vec3{v[2].X - v[0].X, v[2].Y - v[0].Y, v[2].Z - v[0].Z}
	n := e1.Cross(e2)
	if n.Len() < 1e-8 {
		return
	}
	shade := lc.Shade(n.Normalize())

	minX := max(int(math.Min(math.Min(v[0].X, v[1].X), v[2].X)), 0)
	maxX := min(int(math.Max(math.Max(v[0].X, v[1].X), v[2].X))+1, fb.Width-1)
	minY := max(int(math.Min(math.Min(v[0].Y, v[1].Y), v[2].Y)), 0)
	maxY := min(int(math.Max(math.Max(v[0].Y, v[1].Y), v[2].Y))+1, fb.Height-1)
	if minX >= maxX || minY >= maxY {
		return
	}

	det := (v[1].Y-v[2].Y)*(v[0].X-v[2].X) + (v[2].X-v[1].X)*(v[0].Y-v[2].Y)
	if math.Abs(det) < 1e-8 {
		return
	}
	invDet := 1.0 / det
	dy12, dx21 := v[1].Y-v[2].Y, v[2].X-v[1].X
	dy20, dx02 := v[2].Y-v[0].Y, v[0].X-v[2].X

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - v[2].Y
		row := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - v[2].X
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*v[0].Z + w1*v[1].Z + w2*v[2].Z
			zi := row + sx
			if z <= fb.ZBuf[zi] {
				continue
			}

			c := surf.flat
			if surf.tex != nil {
				c = sampleTexture(surf.tex,
					w0*v[0].U+w1*v[1].U+w2*v[2].U,
					w0*v[0].V+w1*v[1].V+w2*v[2].V)
			}
			// Cut-out texels
			if c[3] < 8 {
				continue
			}
			fb.ZBuf[zi] = z

			px := zi * 4
			fb.Color[px] = lc.toneMap(c[0], shade)
			fb.Color[px+1] = lc.toneMap(c[1], shade)
			fb.Color[px+2] = lc.toneMap(c[2], shade)
			fb.Color[px+3] = c[3]
		}
	}
}
