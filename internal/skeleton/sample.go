package skeleton

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnknownScaleMode reports a scale-type code with no defined behaviour.
var ErrUnknownScaleMode = errors.New("unknown scale mode")

// ScaleMode controls how a sample's scale takes part in accumulation.
type ScaleMode uint8

const (
	// ScaleNormal applies the sample's vec3 scale and lets ancestors contribute theirs.
	ScaleNormal ScaleMode = iota
	// ScaleNoInherit stops ancestor scale from reaching this bone's chain.
	ScaleNoInherit
	// ScaleCompensate replaces the vec3 scale with the isotropic CompensateScale.
	ScaleCompensate
)

func (m ScaleMode) String() string {
	switch m {
	case ScaleNormal:
		return "normal"
	case ScaleNoInherit:
		return "no-inherit"
	case ScaleCompensate:
		return "compensate"
	}
	return fmt.Sprintf("ScaleMode(%d)", uint8(m))
}

// ScaleModeFromCode maps the numeric scale type found in animation tracks
// (0 normal, 1 no inherit, 3 compensate). Other codes are rejected.
func ScaleModeFromCode(code int) (ScaleMode, error) {
	switch code {
	case 0:
		return ScaleNormal, nil
	case 1:
		return ScaleNoInherit, nil
	case 3:
		return ScaleCompensate, nil
	}
	return 0, fmt.Errorf("skeleton: scale type %d: %w", code, ErrUnknownScaleMode)
}

// Sample is the decomposed local transform of one bone on one frame.
type Sample struct {
	Translation     mgl64.Vec3
	Rotation        mgl64.Quat
	Scale           mgl64.Vec3
	ScaleMode       ScaleMode
	CompensateScale float64
}

// IdentitySample returns a sample with no translation, rotation or scale.
func IdentitySample() Sample {
	return Sample{
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

// EffectiveScale is the scale vector compose uses for s.
func (s Sample) EffectiveScale() mgl64.Vec3 {
	if s.ScaleMode == ScaleCompensate {
		c := s.CompensateScale
		return mgl64.Vec3{c, c, c}
	}
	return s.Scale
}

// InheritsScale reports whether scale keeps propagating up the parent chain
// past a bone carrying s. Only ScaleNoInherit stops it.
func InheritsScale(s Sample) bool {
	return s.ScaleMode != ScaleNoInherit
}

// Compose builds the local matrix of s: rotation then translation, with the
// effective scale applied first when includeScale is set.
func Compose(s Sample, includeScale bool) mgl64.Mat4 {
	t := s.Translation
	m := mgl64.Translate3D(t[0], t[1], t[2]).Mul4(s.Rotation.Mat4())
	if !includeScale {
		return m
	}
	sc := s.EffectiveScale()
	return m.Mul4(mgl64.Scale3D(sc[0], sc[1], sc[2]))
}

// Track is the optional sample attached to a bone: either a Sample or absent.
// The zero Track is absent, meaning the bone uses its bind pose.
type Track struct {
	sample  Sample
	present bool
}

// Present wraps s as an attached sample.
func Present(s Sample) Track { return Track{sample: s, present: true} }

// Absent is the track of a bone without a sample this frame.
func Absent() Track { return Track{} }

// Sample returns the attached sample and whether there is one.
func (t Track) Sample() (Sample, bool) { return t.sample, t.present }
