package bmd

// Triangle holds polygon type and index triples into vertex/normal/texcoord arrays.
// Polygon == 4 means quad (two triangles: 0-1-2 and 0-2-3).
type Triangle struct {
	Polygon int
	VI      [4]int16
	NI      [4]int16
	TI      [4]int16
}

// Mesh holds parsed geometry for one sub-mesh within a BMD file.
type Mesh struct {
	Verts    [][3]float32 // vertex positions, relative to the bone in Nodes
	Nodes    []int16      // bone index per vertex
	Normals  [][3]float32
	UVs      [][2]float32
	Tris     []Triangle
	TexIndex int16
	TexPath  string // texture reference from BMD (e.g. "sword04.jpg")
}

// Action is one animation clip header. Every non-dummy bone carries Keys
// position and rotation keys for it.
type Action struct {
	Keys          int
	LockPositions [][3]float32 // per-key root positions, only when the action locks position
}

// Keyframes is one bone's track for one action.
type Keyframes struct {
	Positions [][3]float32
	Rotations [][3]float32 // Euler XYZ radians
}

// Bone holds one bone of the skeleton. Dummy bones are placeholders with no
// name, no parent and no keys.
type Bone struct {
	Name    string
	Parent  int
	IsDummy bool
	Tracks  []Keyframes // indexed by action; empty for actions without keys

	BindPosition [3]float64 // action 0, key 0
	BindRotation [3]float64 // Euler XYZ radians
}

// Model is a parsed BMD file.
type Model struct {
	Name    string
	Version byte
	Meshes  []Mesh
	Bones   []Bone
	Actions []Action
}
