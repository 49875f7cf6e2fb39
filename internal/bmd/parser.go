package bmd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"mu-bmd-pose/internal/crypto"
)

var (
	// ErrInvalidHeader reports a file that does not start with "BMD".
	ErrInvalidHeader = errors.New("invalid header")
	// ErrTruncated reports data that ends before the declared contents.
	ErrTruncated = errors.New("truncated data")
)

const (
	maxMeshes  = 100
	nameLen    = 32
	triRecSize = 64
)

// Parse reads a BMD file.
// Supports versions 10 (unencrypted), 12 (XOR), and 15 (LEA-256 ECB, needs keys.HasLEA).
func Parse(path string, keys crypto.Keys) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bmd: read %s: %w", path, err)
	}
	m, err := ParseBytes(raw, keys)
	if err != nil {
		return nil, fmt.Errorf("bmd: %s: %w", path, err)
	}
	return m, nil
}

// ParseBytes decodes a complete BMD file held in memory.
func ParseBytes(raw []byte, keys crypto.Keys) (*Model, error) {
	if len(raw) < 4 || string(raw[:3]) != "BMD" {
		return nil, ErrInvalidHeader
	}

	version := raw[3]
	data := raw[4:]
	if version == 12 || version == 15 {
		if len(raw) < 8 {
			return nil, fmt.Errorf("v%d header: %w", version, ErrTruncated)
		}
		size := binary.LittleEndian.Uint32(raw[4:8])
		if 8+int(size) > len(raw) {
			return nil, fmt.Errorf("v%d payload of %d bytes: %w", version, size, ErrTruncated)
		}
		var err error
		data, err = keys.Decrypt(version, raw[8:8+size])
		if err != nil {
			return nil, fmt.Errorf("v%d: %w", version, err)
		}
	}

	r := &reader{data: data}
	m, err := r.parse()
	if err != nil {
		return nil, err
	}
	m.Version = version
	return m, nil
}

type reader struct {
	data  []byte
	off   int
	short bool
}

func (r *reader) take(n int) []byte {
	if n < 0 || r.off+n > len(r.data) {
		r.off = len(r.data)
		r.short = true
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

// readStr reads a fixed-width, NUL-padded Windows-1252 string.
func (r *reader) readStr(n int) string {
	s := r.take(n)
	for i, b := range s {
		if b == 0 {
			s = s[:i]
			break
		}
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(s)
	if err != nil {
		return string(s)
	}
	return string(decoded)
}

func (r *reader) readI16() int16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return int16(binary.LittleEndian.Uint16(b))
}

func (r *reader) readU16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) readF32() float32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func (r *reader) readVec3() [3]float32 {
	return [3]float32{r.readF32(), r.readF32(), r.readF32()}
}

func (r *reader) readByte() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) parse() (*Model, error) {
	m := &Model{Name: r.readStr(nameLen)}
	meshCount := int(r.readU16())
	boneCount := int(r.readU16())
	actionCount := int(r.readU16())
	if r.short {
		return nil, fmt.Errorf("header: %w", ErrTruncated)
	}

	if meshCount > maxMeshes {
		return nil, fmt.Errorf("invalid mesh count %d", meshCount)
	}

	m.Meshes = make([]Mesh, 0, meshCount)
	for i := 0; i < meshCount; i++ {
		m.Meshes = append(m.Meshes, r.parseMesh())
		if r.short {
			return nil, fmt.Errorf("mesh %d: %w", i, ErrTruncated)
		}
	}

	m.Actions = make([]Action, actionCount)
	for a := range m.Actions {
		numKeys := int(r.readI16())
		if numKeys < 0 {
			return nil, fmt.Errorf("action %d: negative key count %d", a, numKeys)
		}
		m.Actions[a].Keys = numKeys
		if r.readByte() > 0 {
			lock := make([][3]float32, numKeys)
			for k := range lock {
				lock[k] = r.readVec3()
			}
			m.Actions[a].LockPositions = lock
		}
	}
	if r.short {
		return nil, fmt.Errorf("actions: %w", ErrTruncated)
	}

	m.Bones = make([]Bone, 0, boneCount)
	for b := 0; b < boneCount; b++ {
		m.Bones = append(m.Bones, r.parseBone(m.Actions))
		if r.short {
			return nil, fmt.Errorf("bone %d: %w", b, ErrTruncated)
		}
	}

	return m, nil
}

func (r *reader) parseMesh() Mesh {
	nv := int(r.readI16())
	nn := int(r.readI16())
	ntc := int(r.readI16())
	nt := int(r.readI16())
	texIndex := r.readI16()
	if nv < 0 || nn < 0 || ntc < 0 || nt < 0 {
		r.short = true
		return Mesh{}
	}

	// Vertices: 16 bytes each (node:i16, pad:i16, x:f32, y:f32, z:f32)
	verts := make([][3]float32, nv)
	nodes := make([]int16, nv)
	for j := range verts {
		nodes[j] = r.readI16()
		_ = r.readI16()
		verts[j] = r.readVec3()
	}

	// Normals: 20 bytes each (node:i16, pad:i16, nx:f32, ny:f32, nz:f32, bind:i16, pad:i16)
	normals := make([][3]float32, nn)
	for j := range normals {
		r.take(4)
		normals[j] = r.readVec3()
		r.take(4)
	}

	uvs := make([][2]float32, ntc)
	for j := range uvs {
		uvs[j] = [2]float32{r.readF32(), r.readF32()}
	}

	tris := make([]Triangle, nt)
	for j := range tris {
		rec := r.take(triRecSize)
		if rec == nil {
			break
		}
		tri := Triangle{Polygon: int(rec[0])}
		for k := 0; k < 4; k++ {
			tri.VI[k] = int16(binary.LittleEndian.Uint16(rec[2+k*2:]))
			tri.NI[k] = int16(binary.LittleEndian.Uint16(rec[10+k*2:]))
			tri.TI[k] = int16(binary.LittleEndian.Uint16(rec[18+k*2:]))
		}
		tris[j] = tri
	}

	return Mesh{
		Verts:    verts,
		Nodes:    nodes,
		Normals:  normals,
		UVs:      uvs,
		Tris:     tris,
		TexIndex: texIndex,
		TexPath:  strings.ReplaceAll(r.readStr(nameLen), "\\", "/"),
	}
}

func (r *reader) parseBone(actions []Action) Bone {
	if r.readByte() > 0 {
		return Bone{Parent: -1, IsDummy: true}
	}

	b := Bone{
		Name:   r.readStr(nameLen),
		Parent: int(r.readI16()),
		Tracks: make([]Keyframes, len(actions)),
	}
	for a, act := range actions {
		if act.Keys == 0 {
			continue
		}
		kf := Keyframes{
			Positions: make([][3]float32, act.Keys),
			Rotations: make([][3]float32, act.Keys),
		}
		for k := range kf.Positions {
			kf.Positions[k] = r.readVec3()
		}
		for k := range kf.Rotations {
			kf.Rotations[k] = r.readVec3()
		}
		b.Tracks[a] = kf
	}

	if len(b.Tracks) > 0 && len(b.Tracks[0].Positions) > 0 {
		p, q := b.Tracks[0].Positions[0], b.Tracks[0].Rotations[0]
		b.BindPosition = [3]float64{float64(p[0]), float64(p[1]), float64(p[2])}
		b.BindRotation = [3]float64{float64(q[0]), float64(q[1]), float64(q[2])}
	}
	return b
}
