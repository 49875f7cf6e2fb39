package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"mu-bmd-pose/internal/bmd"
)

// BindMeshes moves vertices stored relative to their bone into bind-pose model
// space, in place. BMD geometry is authored bone-local; skinning matrices expect
// bind-space input. Rigid skinning: one bone per vertex, weight 1.0.
func BindMeshes(meshes []bmd.Mesh, h *Hierarchy) {
	if h.Len() == 0 {
		return
	}

	allIdentity := true
	for i := range h.bones {
		if !h.bones[i].WorldTransform.ApproxEqualThreshold(mgl64.Ident4(), 1e-8) {
			allIdentity = false
			break
		}
	}
	if allIdentity {
		return
	}

	for mi := range meshes {
		mesh := &meshes[mi]
		for vi := range mesh.Verts {
			b := int(mesh.Nodes[vi])
			if b < 0 || b >= h.Len() {
				continue
			}
			mesh.Verts[vi] = transformVert(h.bones[b].WorldTransform, mesh.Verts[vi])
		}
	}
}

// Deform returns copies of bind-space meshes posed by skinning matrices.
// Vertices bound to a bone outside skin are left at their bind position.
// Only vertex positions are copied; other slices are shared with the input.
func Deform(meshes []bmd.Mesh, skin []mgl64.Mat4) []bmd.Mesh {
	out := make([]bmd.Mesh, len(meshes))
	for mi, mesh := range meshes {
		verts := make([][3]float32, len(mesh.Verts))
		for vi, v := range mesh.Verts {
			b := int(mesh.Nodes[vi])
			if b < 0 || b >= len(skin) {
				verts[vi] = v
				continue
			}
			verts[vi] = transformVert(skin[b], v)
		}
		mesh.Verts = verts
		out[mi] = mesh
	}
	return out
}

func transformVert(m mgl64.Mat4, v [3]float32) [3]float32 {
	t := mgl64.TransformCoordinate(mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}, m)
	return [3]float32{float32(t[0]), float32(t[1]), float32(t[2])}
}
