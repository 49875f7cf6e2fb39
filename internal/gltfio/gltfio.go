// Package gltfio builds skeletons from glTF skins.
package gltfio

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"

	"mu-bmd-pose/internal/skeleton"
)

// ErrNoSkin reports a document without the requested skin.
var ErrNoSkin = errors.New("no such skin")

// Load opens a .gltf or .glb file and builds the hierarchy of one of its skins.
func Load(path string, skin int) (*skeleton.Hierarchy, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltfio: open %s: %w", path, err)
	}
	h, err := FromDocument(doc, skin)
	if err != nil {
		return nil, fmt.Errorf("gltfio: %s: %w", path, err)
	}
	return h, nil
}

// FromDocument builds the hierarchy of skin in doc. Joints are reordered so
// parents precede children; a joint whose parent node is not a joint of the
// skin becomes a root. Each node's matrix, or else its TRS, is the bind local
// transform; zero-valued rotation and scale mean the glTF defaults.
func FromDocument(doc *gltf.Document, skin int) (*skeleton.Hierarchy, error) {
	if skin < 0 || skin >= len(doc.Skins) {
		return nil, fmt.Errorf("skin %d of %d: %w", skin, len(doc.Skins), ErrNoSkin)
	}
	joints := doc.Skins[skin].Joints

	jointOf := make(map[uint32]int, len(joints))
	for j, node := range joints {
		if int(node) >= len(doc.Nodes) {
			return nil, fmt.Errorf("joint %d references node %d of %d: %w", j, node, len(doc.Nodes), skeleton.ErrMalformedHierarchy)
		}
		jointOf[node] = j
	}

	parent := make([]int, len(joints))
	for j := range parent {
		parent[j] = skeleton.NoBone
	}
	for ni, n := range doc.Nodes {
		p, ok := jointOf[uint32(ni)]
		if !ok {
			continue
		}
		for _, c := range n.Children {
			if j, ok := jointOf[c]; ok {
				if parent[j] != skeleton.NoBone {
					return nil, fmt.Errorf("joint %d has two parents: %w", j, skeleton.ErrMalformedHierarchy)
				}
				parent[j] = p
			}
		}
	}

	order, err := parentsFirst(parent)
	if err != nil {
		return nil, err
	}

	newIndex := make([]int, len(joints))
	for ni, j := range order {
		newIndex[j] = ni
	}

	records := make([]skeleton.BoneRecord, len(order))
	for ni, j := range order {
		n := doc.Nodes[joints[j]]
		p := skeleton.NoBone
		if parent[j] != skeleton.NoBone {
			p = newIndex[parent[j]]
		}
		records[ni] = skeleton.BoneRecord{
			Name:      n.Name,
			ID:        ni,
			ParentID:  p,
			Transform: localMatrix(n),
		}
	}
	return skeleton.NewHierarchy(records)
}

// parentsFirst orders joints so each parent precedes its children, keeping
// the original joint order among roots and among siblings.
func parentsFirst(parent []int) ([]int, error) {
	children := make([][]int, len(parent))
	var roots []int
	for j, p := range parent {
		if p == skeleton.NoBone {
			roots = append(roots, j)
		} else {
			children[p] = append(children[p], j)
		}
	}

	order := make([]int, 0, len(parent))
	queue := roots
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]
		order = append(order, j)
		queue = append(queue, children[j]...)
	}
	if len(order) != len(parent) {
		return nil, fmt.Errorf("%d joints unreachable from a root (cycle): %w", len(parent)-len(order), skeleton.ErrMalformedHierarchy)
	}
	return order, nil
}

// localMatrix returns the node's bind local transform. Documents read by
// gltf.Open carry the glTF defaults (identity matrix, unit quaternion, unit
// scale) for omitted fields, so an all-zero Rotation or Scale can only come from
// a Document built in code that left them unset. Both are read as the default;
// an authored zero scale is therefore never honoured.
func localMatrix(n *gltf.Node) mgl64.Mat4 {
	var m mgl64.Mat4
	for i, v := range n.Matrix {
		m[i] = float64(v)
	}
	if m != (mgl64.Mat4{}) && m != mgl64.Ident4() {
		return m
	}

	t := n.Translation
	rot := mgl64.QuatIdent()
	if r := n.Rotation; r != [4]float32{} {
		rot = mgl64.Quat{W: float64(r[3]), V: mgl64.Vec3{float64(r[0]), float64(r[1]), float64(r[2])}}.Normalize()
	}
	s := mgl64.Vec3{1, 1, 1}
	if n.Scale != [3]float32{} {
		s = mgl64.Vec3{float64(n.Scale[0]), float64(n.Scale[1]), float64(n.Scale[2])}
	}
	return mgl64.Translate3D(float64(t[0]), float64(t[1]), float64(t[2])).
		Mul4(rot.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}
