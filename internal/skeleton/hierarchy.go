package skeleton

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NoBone is the parent ID of a root bone and the result of a failed name lookup.
const NoBone = -1

var (
	// ErrMalformedHierarchy reports a forward, self or dangling parent reference at load.
	ErrMalformedHierarchy = errors.New("malformed hierarchy")

	// ErrInvalidBoneIndex reports a bone index outside the hierarchy.
	ErrInvalidBoneIndex = errors.New("invalid bone index")
)

// BoneRecord is one bone as delivered by a hierarchy loader, in load order.
// Transform is the bind-pose local matrix relative to the parent.
type BoneRecord struct {
	Name      string
	ID        int
	ParentID  int
	Transform mgl64.Mat4
}

// Bone is a validated bone with its derived bind-pose matrices.
type Bone struct {
	Name      string
	ID        int
	ParentID  int
	Transform mgl64.Mat4

	WorldTransform        mgl64.Mat4 // bind pose composed through ancestors
	InverseWorldTransform mgl64.Mat4
}

// IsRoot reports whether the bone has no parent.
func (b Bone) IsRoot() bool { return b.ParentID == NoBone }

// HelperBone is constraint data for a secondary bone. It is carried with the
// hierarchy untouched; nothing here solves it.
type HelperBone struct {
	WatcherBone    string
	ParentBone     string
	HelperBoneName string
	AimAxis        mgl64.Vec3
	WatchRotation  mgl64.Quat
	TargetRotation mgl64.Quat
	MinRange       mgl64.Vec3
	MaxRange       mgl64.Vec3
}

// Hierarchy is an immutable forest of bones stored parent-before-child.
// It is safe for concurrent readers.
type Hierarchy struct {
	bones   []Bone
	helpers []HelperBone
}

// NewHierarchy validates records and precomputes bind-pose world matrices.
// Records must be in load order with ID equal to their position, and every
// parent must appear before its children. On failure no hierarchy is returned.
// A singular or nearly singular world matrix gets the identity as its inverse.
func NewHierarchy(records []BoneRecord, helpers ...HelperBone) (*Hierarchy, error) {
	bones := make([]Bone, len(records))
	for i, rec := range records {
		if rec.ID != i {
			return nil, fmt.Errorf("skeleton: bone %q: id %d at position %d: %w", rec.Name, rec.ID, i, ErrMalformedHierarchy)
		}
		if rec.ParentID != NoBone && (rec.ParentID < 0 || rec.ParentID >= i) {
			return nil, fmt.Errorf("skeleton: bone %q (%d): parent %d: %w", rec.Name, i, rec.ParentID, ErrMalformedHierarchy)
		}

		world := rec.Transform
		if rec.ParentID != NoBone {
			world = bones[rec.ParentID].WorldTransform.Mul4(rec.Transform)
		}
		bones[i] = Bone{
			Name:                  rec.Name,
			ID:                    rec.ID,
			ParentID:              rec.ParentID,
			Transform:             rec.Transform,
			WorldTransform:        world,
			InverseWorldTransform: invertOrIdentity(world),
		}
	}

	return &Hierarchy{
		bones:   bones,
		helpers: append([]HelperBone(nil), helpers...),
	}, nil
}

// Len returns the number of bones.
func (h *Hierarchy) Len() int { return len(h.bones) }

// Bone returns a copy of the bone at index i. It panics if i is out of range.
func (h *Hierarchy) Bone(i int) Bone { return h.bones[i] }

// BoneIndex returns the index of the first bone named name, or NoBone.
// Matching is exact and case-sensitive; with duplicate names the lowest index wins.
func (h *Hierarchy) BoneIndex(name string) int {
	for i := range h.bones {
		if h.bones[i].Name == name {
			return i
		}
	}
	return NoBone
}

// HelperBones returns a copy of the helper-bone records.
func (h *Hierarchy) HelperBones() []HelperBone {
	return append([]HelperBone(nil), h.helpers...)
}

// BindSkinning returns world × inverse-world for every bone, i.e. the skinning
// matrices of the unanimated skeleton.
func (h *Hierarchy) BindSkinning() []mgl64.Mat4 {
	out := make([]mgl64.Mat4, len(h.bones))
	for i := range h.bones {
		out[i] = h.bones[i].WorldTransform.Mul4(h.bones[i].InverseWorldTransform)
	}
	return out
}

// singularDet is the determinant below which a bind matrix counts as singular.
const singularDet = 1e-12

func invertOrIdentity(m mgl64.Mat4) mgl64.Mat4 {
	if math.Abs(m.Det()) < singularDet {
		return mgl64.Ident4()
	}
	return m.Inv()
}
