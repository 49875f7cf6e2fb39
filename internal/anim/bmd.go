package anim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"mu-bmd-pose/internal/bmd"
	"mu-bmd-pose/internal/mathutil"
	"mu-bmd-pose/internal/skeleton"
)

// HierarchyFromBMD builds a skeleton from BMD bones. The bind pose of each
// bone is key 0 of action 0; dummy bones become identity roots.
func HierarchyFromBMD(bones []bmd.Bone) (*skeleton.Hierarchy, error) {
	records := make([]skeleton.BoneRecord, len(bones))
	for i, b := range bones {
		rec := skeleton.BoneRecord{
			Name:      b.Name,
			ID:        i,
			ParentID:  skeleton.NoBone,
			Transform: mgl64.Ident4(),
		}
		if !b.IsDummy {
			if b.Parent >= 0 {
				rec.ParentID = b.Parent
			}
			q := mathutil.EulerToQuat(b.BindRotation[0], b.BindRotation[1], b.BindRotation[2])
			p := b.BindPosition
			rec.Transform = mgl64.Translate3D(p[0], p[1], p[2]).Mul4(q.Mat4())
		}
		records[i] = rec
	}

	h, err := skeleton.NewHierarchy(records)
	if err != nil {
		return nil, fmt.Errorf("anim: bmd skeleton: %w", err)
	}
	return h, nil
}

// Clip samples one BMD action. Frames wrap around the action's key count so a
// clip loops; there is no blending between keys.
type Clip struct {
	bones  []bmd.Bone
	action int
	keys   int
}

// NewClip returns the clip for action of m.
func NewClip(m *bmd.Model, action int) (*Clip, error) {
	if action < 0 || action >= len(m.Actions) {
		return nil, fmt.Errorf("anim: action %d of %d", action, len(m.Actions))
	}
	return &Clip{
		bones:  m.Bones,
		action: action,
		keys:   m.Actions[action].Keys,
	}, nil
}

// Frames returns the number of distinct keys in the clip.
func (c *Clip) Frames() int { return c.keys }

// SampleBone implements skeleton.FrameSource. Dummy bones and actions with
// no keys have no sample. BMD stores no scale, so every sample is ScaleNormal
// with unit scale.
func (c *Clip) SampleBone(bone, frame int) (skeleton.Sample, bool) {
	if c.keys == 0 || bone < 0 || bone >= len(c.bones) {
		return skeleton.Sample{}, false
	}
	b := &c.bones[bone]
	if b.IsDummy || c.action >= len(b.Tracks) {
		return skeleton.Sample{}, false
	}
	kf := b.Tracks[c.action]
	if len(kf.Positions) == 0 {
		return skeleton.Sample{}, false
	}

	k := frame % len(kf.Positions)
	if k < 0 {
		k += len(kf.Positions)
	}
	s := skeleton.IdentitySample()
	s.Translation = mathutil.Vec3From32(kf.Positions[k])
	s.Rotation = mathutil.EulerToQuat32(kf.Rotations[k])
	return s, true
}
