// Package filter classifies BMD meshes that should not appear in a posed
// render, such as additive glow cards and particle quads.
package filter

import (
	"path/filepath"
	"regexp"
	"strings"

	"mu-bmd-pose/internal/bmd"
)

var gradientRE = regexp.MustCompile(`^(?:mini_|hangul)?gra(?:\d|_|$)`)

// effectWords match anywhere in a texture stem.
var effectWords = []string{
	"glow", "flare", "chrome", "effect", "aura", "shiny", "spark",
	"fire", "blur", "energy", "plasma", "shine", "halo", "trail",
	"gradation", "lightmarks", "shockwave", "swordeff", "runeset",
}

// "flame" only as a prefix: "requitalbox_flame_wood" is a wooden frame.
var effectPrefixes = []string{"flame"}

func texStem(m *bmd.Mesh) string {
	base := filepath.Base(strings.ReplaceAll(strings.ToLower(m.TexPath), "\\", "/"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsEffect reports whether m is an effect overlay, judged by its texture name.
func IsEffect(m *bmd.Mesh) bool {
	stem := texStem(m)
	if stem == "" {
		return false
	}
	if gradientRE.MatchString(stem) {
		return true
	}
	for _, w := range effectWords {
		if strings.Contains(stem, w) {
			return true
		}
	}
	for _, p := range effectPrefixes {
		if strings.HasPrefix(stem, p) {
			return true
		}
	}
	return false
}

// WithoutEffects returns the meshes that are not effect overlays and how
// many were dropped. The input slice is not modified.
func WithoutEffects(meshes []bmd.Mesh) ([]bmd.Mesh, int) {
	out := make([]bmd.Mesh, 0, len(meshes))
	for i := range meshes {
		if IsEffect(&meshes[i]) {
			continue
		}
		out = append(out, meshes[i])
	}
	return out, len(meshes) - len(out)
}
