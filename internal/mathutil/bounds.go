package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Bounds is an axis-aligned box. The zero value is not empty; use EmptyBounds.
type Bounds struct {
	Min, Max mgl64.Vec3
}

// EmptyBounds returns a box that any Extend call will replace.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p mgl64.Vec3) {
	for k := 0; k < 3; k++ {
		b.Min[k] = math.Min(b.Min[k], p[k])
		b.Max[k] = math.Max(b.Max[k], p[k])
	}
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool { return b.Min[0] > b.Max[0] }

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl64.Vec3 { return b.Min.Add(b.Max).Mul(0.5) }

// Size returns the extent along each axis.
func (b Bounds) Size() mgl64.Vec3 { return b.Max.Sub(b.Min) }
