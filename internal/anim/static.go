package anim

import "mu-bmd-pose/internal/skeleton"

// Static is an explicit table of samples keyed by frame then bone. Missing
// entries are absent. It is how tools and tests feed hand-written poses.
type Static map[int]map[int]skeleton.Sample

// Set records s for bone on frame.
func (st Static) Set(frame, bone int, s skeleton.Sample) {
	f, ok := st[frame]
	if !ok {
		f = make(map[int]skeleton.Sample)
		st[frame] = f
	}
	f[bone] = s
}

// SampleBone implements skeleton.FrameSource.
func (st Static) SampleBone(bone, frame int) (skeleton.Sample, bool) {
	s, ok := st[frame][bone]
	return s, ok
}
