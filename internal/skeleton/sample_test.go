package skeleton

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestScaleModeFromCode(t *testing.T) {
	tests := []struct {
		code int
		want ScaleMode
	}{
		{0, ScaleNormal},
		{1, ScaleNoInherit},
		{3, ScaleCompensate},
	}
	for _, tt := range tests {
		got, err := ScaleModeFromCode(tt.code)
		if err != nil || got != tt.want {
			t.Errorf("ScaleModeFromCode(%d) = %v, %v, want %v", tt.code, got, err, tt.want)
		}
	}

	for _, code := range []int{2, 4, -1} {
		if _, err := ScaleModeFromCode(code); !errors.Is(err, ErrUnknownScaleMode) {
			t.Errorf("ScaleModeFromCode(%d) error = %v, want ErrUnknownScaleMode", code, err)
		}
	}
}

func TestInheritsScale(t *testing.T) {
	tests := []struct {
		mode ScaleMode
		want bool
	}{
		{ScaleNormal, true},
		{ScaleNoInherit, false},
		{ScaleCompensate, true},
	}
	for _, tt := range tests {
		s := IdentitySample()
		s.ScaleMode = tt.mode
		if got := InheritsScale(s); got != tt.want {
			t.Errorf("InheritsScale(%v) = %v, want %v", tt.mode, got, tt.want)
		}
	}
}

func TestComposeCompensateScaleIsIsotropic(t *testing.T) {
	s := IdentitySample()
	s.Scale = mgl64.Vec3{5, 7, 9}
	s.ScaleMode = ScaleCompensate
	s.CompensateScale = 3

	if got, want := s.EffectiveScale(), (mgl64.Vec3{3, 3, 3}); got != want {
		t.Errorf("EffectiveScale() = %v, want %v", got, want)
	}
	if got, want := Compose(s, true), mgl64.Scale3D(3, 3, 3); got != want {
		t.Errorf("Compose() = %v, want %v", got, want)
	}
}

func TestComposeOrder(t *testing.T) {
	s := Sample{
		Translation: mgl64.Vec3{1, 2, 3},
		Rotation:    mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 0, 1}),
		Scale:       mgl64.Vec3{2, 2, 2},
	}

	// Scale, then rotate, then translate.
	p := mgl64.TransformCoordinate(mgl64.Vec3{1, 0, 0}, Compose(s, true))
	if want := (mgl64.Vec3{1, 4, 3}); !nearVec(p, want, 1e-9) {
		t.Errorf("Compose(s, true) maps +X to %v, want %v", p, want)
	}

	p = mgl64.TransformCoordinate(mgl64.Vec3{1, 0, 0}, Compose(s, false))
	if want := (mgl64.Vec3{1, 3, 3}); !nearVec(p, want, 1e-9) {
		t.Errorf("Compose(s, false) maps +X to %v, want %v", p, want)
	}
}

func TestTrack(t *testing.T) {
	if _, ok := (Track{}).Sample(); ok {
		t.Errorf("zero Track is present")
	}
	if _, ok := Absent().Sample(); ok {
		t.Errorf("Absent() is present")
	}
	s := IdentitySample()
	s.Translation = mgl64.Vec3{4, 5, 6}
	got, ok := Present(s).Sample()
	if !ok || got != s {
		t.Errorf("Present(s).Sample() = %v, %v, want %v, true", got, ok, s)
	}
}
