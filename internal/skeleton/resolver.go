package skeleton

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// FrameSource yields the local sample of a bone on a frame, if it has one.
type FrameSource interface {
	SampleBone(bone, frame int) (Sample, bool)
}

// Resolver turns the samples attached to a hierarchy into world and skinning
// matrices. A Resolver is not safe for concurrent use; give each goroutine its
// own Resolver over a shared Hierarchy.
type Resolver struct {
	h      *Hierarchy
	tracks []Track
	acc    accumulator
}

// NewResolver returns a resolver with no samples attached.
func NewResolver(h *Hierarchy) *Resolver {
	return &Resolver{
		h:      h,
		tracks: make([]Track, h.Len()),
	}
}

// Hierarchy returns the skeleton the resolver poses.
func (r *Resolver) Hierarchy() *Hierarchy { return r.h }

// SetSample attaches s to bone i.
func (r *Resolver) SetSample(i int, s Sample) error {
	if i < 0 || i >= len(r.tracks) {
		return fmt.Errorf("skeleton: set sample on bone %d of %d: %w", i, len(r.tracks), ErrInvalidBoneIndex)
	}
	r.tracks[i] = Present(s)
	return nil
}

// ClearSample detaches the sample of bone i so it falls back to its bind pose.
func (r *Resolver) ClearSample(i int) error {
	if i < 0 || i >= len(r.tracks) {
		return fmt.Errorf("skeleton: clear sample on bone %d of %d: %w", i, len(r.tracks), ErrInvalidBoneIndex)
	}
	r.tracks[i] = Absent()
	return nil
}

// Track returns what is attached to bone i.
func (r *Resolver) Track(i int) Track { return r.tracks[i] }

// Reset detaches every sample. Later resolves reproduce the bind pose.
func (r *Resolver) Reset() {
	clear(r.tracks)
}

// Load replaces the whole sample set with frame of src. Bones src has no
// sample for become absent, so nothing from an earlier frame survives.
func (r *Resolver) Load(src FrameSource, frame int) {
	for i := range r.tracks {
		if s, ok := src.SampleBone(i, frame); ok {
			r.tracks[i] = Present(s)
		} else {
			r.tracks[i] = Absent()
		}
	}
}

// FindBone returns the index of the first bone named name, or NoBone.
func (r *Resolver) FindBone(name string) int { return r.h.BoneIndex(name) }

// WorldTransforms returns the animated world matrix of every bone in index order.
// These are not skinning matrices; renderers want AnimationTransforms.
func (r *Resolver) WorldTransforms() []mgl64.Mat4 {
	r.acc.run(r.h.bones, r.tracks)
	return append([]mgl64.Mat4(nil), r.acc.scaled...)
}

// AnimationTransforms returns the skinning matrix of every bone in index
// order: the animated world matrix applied after the bone's inverse bind
// matrix. These take bind-space vertices to their posed positions.
func (r *Resolver) AnimationTransforms() []mgl64.Mat4 {
	r.acc.run(r.h.bones, r.tracks)
	out := make([]mgl64.Mat4, len(r.h.bones))
	for i := range out {
		out[i] = r.acc.scaled[i].Mul4(r.h.bones[i].InverseWorldTransform)
	}
	return out
}

// SingleBoneTransform returns the animated world matrix of bone index.
// NoBone, any other out-of-range index and an empty hierarchy all yield the
// identity matrix, so callers can probe with NoBone freely.
func (r *Resolver) SingleBoneTransform(index int) mgl64.Mat4 {
	if index < 0 || index >= len(r.h.bones) {
		return mgl64.Ident4()
	}
	// The pass is linear in bone count; only the prefix up to index matters
	// since parents always precede children.
	r.acc.run(r.h.bones[:index+1], r.tracks[:index+1])
	return r.acc.scaled[index]
}
