// Command inspectbmd prints a skeleton and where its bones land on a frame.
//
// Usage:
//
//	go run ./cmd/inspectbmd [-action N] [-frame N] [-find Name,...] model.bmd|model.gltf ...
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mu-bmd-pose/internal/anim"
	"mu-bmd-pose/internal/bmd"
	"mu-bmd-pose/internal/config"
	"mu-bmd-pose/internal/crypto"
	"mu-bmd-pose/internal/gltfio"
	"mu-bmd-pose/internal/skeleton"
)

func main() {
	action := flag.Int("action", 0, "BMD action to sample")
	frame := flag.Int("frame", 0, "Frame to resolve")
	skin := flag.Int("skin", 0, "glTF skin index")
	find := flag.String("find", "", "Comma-separated bone names to look up")
	flag.Parse()

	var cfg config.Config
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	keys, err := cfg.Keys()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	status := 0
	for _, arg := range flag.Args() {
		h, src, err := open(arg, keys, *action, *skin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
			status = 1
			continue
		}

		res := skeleton.NewResolver(h)
		if src != nil {
			res.Load(src, *frame)
		}
		fmt.Printf("\n=== %s (bones=%d frame=%d) ===\n", arg, h.Len(), *frame)
		printBones(h, res)

		if *find != "" {
			for _, name := range strings.Split(*find, ",") {
				i := res.FindBone(name)
				if i == skeleton.NoBone {
					fmt.Printf("  find %q: not found\n", name)
					continue
				}
				t := res.SingleBoneTransform(i).Col(3)
				fmt.Printf("  find %q: bone %d at (%.2f, %.2f, %.2f)\n", name, i, t[0], t[1], t[2])
			}
		}
	}
	os.Exit(status)
}

func open(path string, keys crypto.Keys, action, skin int) (*skeleton.Hierarchy, skeleton.FrameSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		h, err := gltfio.Load(path, skin)
		return h, nil, err
	}

	m, err := bmd.Parse(path, keys)
	if err != nil {
		return nil, nil, err
	}
	h, err := anim.HierarchyFromBMD(m.Bones)
	if err != nil {
		return nil, nil, err
	}
	if len(m.Actions) == 0 {
		return h, nil, nil
	}
	clip, err := anim.NewClip(m, action)
	if err != nil {
		return nil, nil, err
	}
	fmt.Printf("model %q v%d: meshes=%d actions=%d (action %d has %d keys)\n",
		m.Name, m.Version, len(m.Meshes), len(m.Actions), action, clip.Frames())
	return h, clip, nil
}

func printBones(h *skeleton.Hierarchy, res *skeleton.Resolver) {
	posed := res.WorldTransforms()
	for i := 0; i < h.Len(); i++ {
		b := h.Bone(i)
		bind := b.WorldTransform.Col(3)
		pose := posed[i].Col(3)
		depth := 0
		for p := b.ParentID; p != skeleton.NoBone; p = h.Bone(p).ParentID {
			depth++
		}
		name := b.Name
		if name == "" {
			name = "(dummy)"
		}
		mark := ""
		if _, ok := res.Track(i).Sample(); ok {
			mark = " *"
		}
		fmt.Printf("  %3d %s%-24s parent=%-3d bind=(%.2f, %.2f, %.2f) pose=(%.2f, %.2f, %.2f)%s\n",
			i, strings.Repeat("  ", depth), name, b.ParentID,
			bind[0], bind[1], bind[2], pose[0], pose[1], pose[2], mark)
	}
	for _, hb := range h.HelperBones() {
		fmt.Printf("  helper %s: watches %s under %s\n", hb.HelperBoneName, hb.WatcherBone, hb.ParentBone)
	}
}
