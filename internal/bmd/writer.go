package bmd

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding/charmap"

	"mu-bmd-pose/internal/crypto"
)

// Marshal encodes m as an unencrypted version 10 BMD file.
// Bones must carry one track per action, each with Action.Keys keys.
func Marshal(m *Model) []byte {
	out := []byte{'B', 'M', 'D', 10}
	return append(out, marshalBody(m)...)
}

// MarshalXOR encodes m as a version 12 BMD file.
func MarshalXOR(m *Model) []byte {
	body := crypto.EncryptXOR(marshalBody(m))
	out := []byte{'B', 'M', 'D', 12}
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	return append(out, body...)
}

type writer struct {
	buf []byte
}

func (w *writer) str(s string, n int) {
	enc, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	if err != nil {
		enc = []byte(s)
	}
	field := make([]byte, n)
	copy(field[:n-1], enc)
	w.buf = append(w.buf, field...)
}

func (w *writer) i16(v int16)  { w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(v)) }
func (w *writer) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *writer) f32(v float32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, math.Float32bits(v))
}
func (w *writer) vec3(v [3]float32) { w.f32(v[0]); w.f32(v[1]); w.f32(v[2]) }
func (w *writer) byte1(b byte)      { w.buf = append(w.buf, b) }

func marshalBody(m *Model) []byte {
	w := &writer{}
	w.str(m.Name, nameLen)
	w.u16(uint16(len(m.Meshes)))
	w.u16(uint16(len(m.Bones)))
	w.u16(uint16(len(m.Actions)))

	for _, mesh := range m.Meshes {
		w.i16(int16(len(mesh.Verts)))
		w.i16(int16(len(mesh.Normals)))
		w.i16(int16(len(mesh.UVs)))
		w.i16(int16(len(mesh.Tris)))
		w.i16(mesh.TexIndex)
		for i, v := range mesh.Verts {
			w.i16(mesh.Nodes[i])
			w.i16(0)
			w.vec3(v)
		}
		for _, n := range mesh.Normals {
			w.i16(0)
			w.i16(0)
			w.vec3(n)
			w.i16(0)
			w.i16(0)
		}
		for _, uv := range mesh.UVs {
			w.f32(uv[0])
			w.f32(uv[1])
		}
		for _, t := range mesh.Tris {
			rec := make([]byte, triRecSize)
			rec[0] = byte(t.Polygon)
			for k := 0; k < 4; k++ {
				binary.LittleEndian.PutUint16(rec[2+k*2:], uint16(t.VI[k]))
				binary.LittleEndian.PutUint16(rec[10+k*2:], uint16(t.NI[k]))
				binary.LittleEndian.PutUint16(rec[18+k*2:], uint16(t.TI[k]))
			}
			w.buf = append(w.buf, rec...)
		}
		w.str(mesh.TexPath, nameLen)
	}

	for _, a := range m.Actions {
		w.i16(int16(a.Keys))
		if a.LockPositions == nil {
			w.byte1(0)
			continue
		}
		w.byte1(1)
		for _, p := range a.LockPositions {
			w.vec3(p)
		}
	}

	for _, b := range m.Bones {
		if b.IsDummy {
			w.byte1(1)
			continue
		}
		w.byte1(0)
		w.str(b.Name, nameLen)
		w.i16(int16(b.Parent))
		for a, act := range m.Actions {
			if act.Keys == 0 {
				continue
			}
			kf := b.Tracks[a]
			for _, p := range kf.Positions {
				w.vec3(p)
			}
			for _, r := range kf.Rotations {
				w.vec3(r)
			}
		}
	}

	return w.buf
}
