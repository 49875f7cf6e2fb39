package filter

import (
	"testing"

	"mu-bmd-pose/internal/bmd"
)

func TestIsEffect(t *testing.T) {
	tests := []struct {
		tex  string
		want bool
	}{
		{"Item\\sword_glow.jpg", true},
		{"gra_01.ozj", true},
		{"mini_gra3.tga", true},
		{"flame01.ozt", true},
		{"requitalbox_flame_wood.jpg", false},
		{"grass.jpg", false},
		{"Player\\skin_warrior_01.jpg", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsEffect(&bmd.Mesh{TexPath: tt.tex}); got != tt.want {
			t.Errorf("IsEffect(%q) = %v, want %v", tt.tex, got, tt.want)
		}
	}
}

func TestWithoutEffects(t *testing.T) {
	meshes := []bmd.Mesh{{TexPath: "body.jpg"}, {TexPath: "aura.jpg"}, {TexPath: "hair.jpg"}}
	got, dropped := WithoutEffects(meshes)
	if dropped != 1 || len(got) != 2 || got[0].TexPath != "body.jpg" || got[1].TexPath != "hair.jpg" {
		t.Errorf("WithoutEffects() = %v, %d", got, dropped)
	}
	if meshes[1].TexPath != "aura.jpg" {
		t.Errorf("WithoutEffects() modified its input")
	}
}
