package raster

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"

	"mu-bmd-pose/internal/bmd"
	"mu-bmd-pose/internal/mathutil"
	"mu-bmd-pose/internal/texture"
)

// Options controls one render.
type Options struct {
	Size        int        // output edge in pixels, before supersampling
	Supersample int        // render at Size*Supersample
	View        mgl64.Mat3 // model-to-camera rotation
	Textures    texture.Resolver

	// Fit, when non-empty, is the camera-space box the view is framed on.
	// Batch renders pass one box for all frames so the camera stays still.
	Fit mathutil.Bounds
}

// Frame returns the camera-space bounds of meshes under view.
func Frame(meshes []bmd.Mesh, view mgl64.Mat3) mathutil.Bounds {
	b := mathutil.EmptyBounds()
	for _, m := range meshes {
		for _, v := range m.Verts {
			b.Extend(view.Mul3x1(mathutil.Vec3From32(v)))
		}
	}
	return b
}

// Render draws posed meshes orthographically, framed to fill the image with a
// margin. Returns a transparent image when there is nothing to draw.
func Render(meshes []bmd.Mesh, opt Options) *image.NRGBA {
	ss := max(opt.Supersample, 1)
	renderSize := opt.Size * ss

	fit := opt.Fit
	if fit.Empty() || fit == (mathutil.Bounds{}) {
		fit = Frame(meshes, opt.View)
	}
	if fit.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	size := fit.Size()
	span := max(size[0], size[1], 0.001)
	margin := 16 * ss
	scale := float64(renderSize-2*margin) / span
	center := fit.Center()
	half := float64(renderSize) / 2

	fb := NewFrameBuffer(renderSize, renderSize)
	lc := DefaultLightConfig()

	for _, mesh := range meshes {
		if len(mesh.Verts) == 0 {
			continue
		}

		proj := make([]screenVert, len(mesh.Verts))
		for i, v := range mesh.Verts {
			t := opt.View.Mul3x1(mathutil.Vec3From32(v))
			proj[i] = screenVert{
				X: (t[0]-center[0])*scale + half,
				Y: -(t[1]-center[1])*scale + half,
				Z: t[2],
			}
		}

		var tex *image.NRGBA
		if opt.Textures != nil {
			tex = opt.Textures.Resolve(mesh.TexPath)
		}
		flat := defaultColor
		if tex != nil {
			flat = averageColor(tex)
		}

		for _, tri := range mesh.Tris {
			drawTri(fb, proj, mesh.UVs, tri, [3]int{0, 1, 2}, tex, flat, &lc)
			if tri.Polygon == 4 {
				drawTri(fb, proj, mesh.UVs, tri, [3]int{0, 2, 3}, tex, flat, &lc)
			}
		}
	}

	return fb.Image()
}

func drawTri(fb *FrameBuffer, proj []screenVert, uvs [][2]float32, tri bmd.Triangle, corners [3]int, tex *image.NRGBA, flat [4]uint8, lc *LightConfig) {
	var v [3]screenVert
	surf := surface{tex: tex, flat: flat}
	for k, c := range corners {
		vi := int(tri.VI[c])
		if vi < 0 || vi >= len(proj) {
			return
		}
		v[k] = proj[vi]

		ti := int(tri.TI[c])
		if ti < 0 || ti >= len(uvs) {
			surf.tex = nil
			continue
		}
		v[k].U, v[k].V = float64(uvs[ti][0]), float64(uvs[ti][1])
	}
	rasterizeTriangle(fb, v, surf, lc)
}
