package bmd

import (
	"errors"
	"reflect"
	"testing"

	"mu-bmd-pose/internal/crypto"
)

func testModel() *Model {
	return &Model{
		Name: "Épée",
		Meshes: []Mesh{{
			Verts:   [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
			Nodes:   []int16{0, 0, 2},
			Normals: [][3]float32{{0, 0, 1}},
			UVs:     [][2]float32{{0, 0}, {1, 0}, {0, 1}},
			Tris: []Triangle{{
				Polygon: 3,
				VI:      [4]int16{0, 1, 2, 0},
				TI:      [4]int16{0, 1, 2, 0},
			}},
			TexIndex: 1,
			TexPath:  "sword04.jpg",
		}},
		Actions: []Action{
			{Keys: 2},
			{Keys: 0},
			{Keys: 1, LockPositions: [][3]float32{{0, 0, 5}}},
		},
		Bones: []Bone{
			{
				Name:   "Root",
				Parent: -1,
				Tracks: []Keyframes{
					{Positions: [][3]float32{{0.5, 0, 0}, {1, 0, 0}}, Rotations: [][3]float32{{0, 0, 1.25}, {0, 0, 0}}},
					{},
					{Positions: [][3]float32{{2, 2, 2}}, Rotations: [][3]float32{{0, 0, 0}}},
				},
				BindPosition: [3]float64{0.5, 0, 0},
				BindRotation: [3]float64{0, 0, 1.25},
			},
			{Parent: -1, IsDummy: true},
			{
				Name:   "Blade",
				Parent: 0,
				Tracks: []Keyframes{
					{Positions: [][3]float32{{0, 3, 0}, {0, 3, 0}}, Rotations: [][3]float32{{0, 0, 0}, {0.5, 0, 0}}},
					{},
					{Positions: [][3]float32{{0, 3, 0}}, Rotations: [][3]float32{{0, 0, 0}}},
				},
				BindPosition: [3]float64{0, 3, 0},
			},
		},
	}
}

func TestParseBytesRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		raw     []byte
		version byte
	}{
		{"plain", Marshal(testModel()), 10},
		{"xor", MarshalXOR(testModel()), 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBytes(tt.raw, crypto.Keys{})
			if err != nil {
				t.Fatalf("ParseBytes() error = %v", err)
			}
			want := testModel()
			want.Version = tt.version
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ParseBytes() =\n%+v\nwant\n%+v", got, want)
			}
		})
	}
}

func TestParseBytesErrors(t *testing.T) {
	full := Marshal(testModel())
	xor := MarshalXOR(testModel())

	tests := []struct {
		name string
		raw  []byte
		want error
	}{
		{"empty", nil, ErrInvalidHeader},
		{"wrong magic", []byte("OBJ\x0a0000"), ErrInvalidHeader},
		{"inside name", full[:10], ErrTruncated},
		{"inside counts", full[:40], ErrTruncated},
		{"inside mesh", full[:60], ErrTruncated},
		{"last byte missing", full[:len(full)-1], ErrTruncated},
		{"xor size header", xor[:6], ErrTruncated},
		{"xor payload short", xor[:len(xor)-3], ErrTruncated},
		{"lea without key", []byte{'B', 'M', 'D', 15, 16, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, crypto.ErrNoKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseBytes(tt.raw, crypto.Keys{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("ParseBytes() error = %v, want %v", err, tt.want)
			}
			if m != nil {
				t.Errorf("ParseBytes() returned a model alongside an error")
			}
		})
	}
}

func TestParseRejectsNegativeKeyCount(t *testing.T) {
	m := &Model{Name: "x", Actions: []Action{{Keys: -2}}}
	if _, err := ParseBytes(Marshal(m), crypto.Keys{}); err == nil {
		t.Errorf("ParseBytes() accepted a negative key count")
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse(t.TempDir()+"/missing.bmd", crypto.Keys{}); err == nil {
		t.Errorf("Parse() of a missing file succeeded")
	}
}
