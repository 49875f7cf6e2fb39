package mathutil

import "github.com/go-gl/mathgl/mgl64"

// Camera matrices matching the BMD viewer.
var (
	// ModelFlip converts Z-up (DirectX) to Y-up (OpenGL): Rx(-90°)
	ModelFlip = mgl64.Rotate3DX(mgl64.DegToRad(-90))

	// MirrorX converts left-handed to right-handed: diag(-1, 1, 1)
	MirrorX = mgl64.Diag3(mgl64.Vec3{-1, 1, 1})

	// ViewFallback is the BMD-viewer reference camera matrix.
	// MIRROR_X @ Rx(-15°) @ Ry(12°) @ MODEL_FLIP
	ViewFallback = MirrorX.
			Mul3(mgl64.Rotate3DX(mgl64.DegToRad(-15))).
			Mul3(mgl64.Rotate3DY(mgl64.DegToRad(12))).
			Mul3(ModelFlip)

	// ViewFront looks straight down the model's forward axis.
	ViewFront = MirrorX.Mul3(ModelFlip)
)

// ViewByName returns a named camera matrix. Unknown names select ViewFallback.
func ViewByName(name string) mgl64.Mat3 {
	switch name {
	case "front":
		return ViewFront
	case "side":
		return MirrorX.Mul3(mgl64.Rotate3DY(mgl64.DegToRad(90))).Mul3(ModelFlip)
	}
	return ViewFallback
}
