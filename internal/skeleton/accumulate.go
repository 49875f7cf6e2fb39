package skeleton

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// accumulator resolves every bone in one parent-before-child pass.
//
// For each bone it keeps two results: scaled[i] is the bone's animated world
// matrix when scale still propagates into it, unscaled[i] the same matrix once
// a descendant has cut scale inheritance. A child reads whichever of its
// parent's results its own include-scale decision selects, so the pass gives
// the same matrices as walking each chain from leaf to root.
type accumulator struct {
	scaled   []mgl64.Mat4
	unscaled []mgl64.Mat4
}

func (a *accumulator) resize(n int) {
	if cap(a.scaled) < n {
		a.scaled = make([]mgl64.Mat4, n)
		a.unscaled = make([]mgl64.Mat4, n)
	}
	a.scaled = a.scaled[:n]
	a.unscaled = a.unscaled[:n]
}

// run fills both caches from the bind pose in bones and the samples in tracks.
// tracks must be as long as bones.
func (a *accumulator) run(bones []Bone, tracks []Track) {
	a.resize(len(bones))

	for i := range bones {
		b := &bones[i]
		p := b.ParentID
		if p != NoBone && (p < 0 || p >= i) {
			panic(fmt.Errorf("skeleton: bone %d has parent %d: %w", i, p, ErrInvalidBoneIndex))
		}

		s, ok := tracks[i].Sample()
		switch {
		case !ok && p == NoBone:
			a.scaled[i] = b.Transform
			a.unscaled[i] = b.Transform

		case !ok:
			// Bind-pose bones restart scale propagation from their parent.
			m := a.scaled[p].Mul4(b.Transform)
			a.scaled[i] = m
			a.unscaled[i] = m

		case p == NoBone:
			a.scaled[i] = Compose(s, true)
			a.unscaled[i] = Compose(s, false)

		default:
			parent := a.scaled[p]
			if !InheritsScale(s) {
				parent = a.unscaled[p]
			}
			a.scaled[i] = parent.Mul4(Compose(s, true))
			a.unscaled[i] = a.unscaled[p].Mul4(Compose(s, false))
		}
	}
}
