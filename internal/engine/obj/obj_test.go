package obj

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/udhos/gwob"
)

const quad = `# unit quad
mtllib quad.mtl
o Quad
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl screen
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseQuad(t *testing.T) {
	m, err := Parse("quad", []byte(quad))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Triangles() != 2 {
		t.Fatalf("triangles = %d, want 2", m.Triangles())
	}
	if m.MaterialLib != "quad.mtl" {
		t.Errorf("material lib = %q", m.MaterialLib)
	}
	if len(m.Parts) == 0 {
		t.Fatal("no parts")
	}
	covered := 0
	for _, p := range m.Parts {
		if p.Material != "screen" {
			t.Errorf("part material = %q, want screen", p.Material)
		}
		covered += p.Count
	}
	if covered != len(m.Indices) {
		t.Errorf("parts cover %d of %d indices", covered, len(m.Indices))
	}

	corners := map[[3]float32][2]float32{
		{-1, -1, 0}: {0, 0},
		{1, -1, 0}:  {1, 0},
		{1, 1, 0}:   {1, 1},
		{-1, 1, 0}:  {0, 1},
	}
	seen := map[[3]float32]bool{}
	for _, i := range m.Indices {
		v := m.Vertices[i]
		tc, ok := corners[v.Position]
		if !ok {
			t.Fatalf("unexpected position %v", v.Position)
		}
		if v.TexCoord != tc {
			t.Errorf("texcoord at %v = %v, want %v", v.Position, v.TexCoord, tc)
		}
		if v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("normal at %v = %v", v.Position, v.Normal)
		}
		seen[v.Position] = true
	}
	if len(seen) != 4 {
		t.Errorf("indices reach %d corners, want 4", len(seen))
	}
}

func TestParseWithoutNormals(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	m, err := Parse("tri", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Triangles() != 1 {
		t.Fatalf("triangles = %d, want 1", m.Triangles())
	}
	for _, i := range m.Indices {
		if n := m.Vertices[i].Normal; !near3(n, [3]float32{0, 0, 1}) {
			t.Errorf("normal = %v, want (0, 0, 1)", n)
		}
	}
}

func TestSmoothNormals(t *testing.T) {
	// Two faces folded along the shared edge 0-1: one in the XY plane facing
	// +Z, one in the XZ plane facing +Y.
	verts := []Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{1, 0, 0}},
		{Position: [3]float32{0, 1, 0}},
		{Position: [3]float32{0, 0, -1}},
	}
	indices := []uint32{0, 1, 2, 0, 1, 3}
	smoothNormals(verts, indices)

	s := float32(1 / math.Sqrt2)
	tests := []struct {
		vertex int
		want   [3]float32
	}{
		{0, [3]float32{0, s, s}},
		{1, [3]float32{0, s, s}},
		{2, [3]float32{0, 0, 1}},
		{3, [3]float32{0, 1, 0}},
	}
	for _, tt := range tests {
		if got := verts[tt.vertex].Normal; !near3(got, tt.want) {
			t.Errorf("vertex %d normal = %v, want %v", tt.vertex, got, tt.want)
		}
	}
}

func TestFromObjMergesMaterialRuns(t *testing.T) {
	o := &gwob.Obj{
		Coord:                []float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		Indices:              []int{0, 1, 2, 0, 2, 1, 0, 1, 2},
		StrideSize:           12,
		StrideOffsetPosition: 0,
		Groups: []*gwob.Group{
			{Name: "a", Usemtl: "wood", IndexBegin: 0, IndexCount: 3},
			{Name: "b", Usemtl: "wood", IndexBegin: 3, IndexCount: 3},
			{Name: "empty", Usemtl: "cloth", IndexBegin: 6, IndexCount: 0},
			{Name: "c", Usemtl: "stone", IndexBegin: 6, IndexCount: 3},
		},
	}
	m, err := fromObj(o)
	if err != nil {
		t.Fatalf("fromObj: %v", err)
	}
	want := []Part{
		{Material: "wood", First: 0, Count: 6},
		{Material: "stone", First: 6, Count: 3},
	}
	if len(m.Parts) != len(want) {
		t.Fatalf("parts = %+v, want %+v", m.Parts, want)
	}
	for i := range want {
		if m.Parts[i] != want[i] {
			t.Errorf("part %d = %+v, want %+v", i, m.Parts[i], want[i])
		}
	}
	if m.Vertices[1].Position != [3]float32{1, 0, 0} {
		t.Errorf("vertex 1 = %v", m.Vertices[1].Position)
	}
}

func TestFromObjRejectsBadData(t *testing.T) {
	tri := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	tests := map[string]*gwob.Obj{
		"index out of range": {Coord: tri, Indices: []int{0, 1, 3}, StrideSize: 12},
		"negative index":     {Coord: tri, Indices: []int{0, -1, 2}, StrideSize: 12},
		"ragged coords":      {Coord: tri[:8], Indices: []int{0, 1, 2}, StrideSize: 12},
		"not triangles":      {Coord: tri, Indices: []int{0, 1}, StrideSize: 12},
		"zero stride":        {Coord: tri, Indices: []int{0, 1, 2}},
		"group past end": {Coord: tri, Indices: []int{0, 1, 2}, StrideSize: 12,
			Groups: []*gwob.Group{{Name: "g", IndexBegin: 0, IndexCount: 6}}},
	}
	for name, o := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := fromObj(o); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseMTL(t *testing.T) {
	src := `# two materials
newmtl wood
Ka 0.1 0.1 0.1
Kd 0.6 0.4 0.2
Ks 0.5 0.5 0.5
Ns 32
map_Kd textures\wood.png
map_Ks -s 1 1 1 wood_spec.png

newmtl glass
d 0.3
`
	mats, err := ParseMTL([]byte(src))
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	wood := mats["wood"]
	if wood == nil {
		t.Fatal("wood missing")
	}
	if wood.Color != [3]float32{0.6, 0.4, 0.2} {
		t.Errorf("wood color = %v", wood.Color)
	}
	if wood.DiffuseMap != filepath.FromSlash("textures/wood.png") || wood.SpecularMap != "wood_spec.png" {
		t.Errorf("maps = %q, %q", wood.DiffuseMap, wood.SpecularMap)
	}
	glass := mats["glass"]
	if glass == nil {
		t.Fatal("glass missing")
	}
	if glass.Color != [3]float32{1, 1, 1} || glass.DiffuseMap != "" || glass.SpecularMap != "" {
		t.Errorf("glass = %+v", glass)
	}
}

func TestLoadResolvesMaterials(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("quad.obj", quad)
	write("quad.mtl", "newmtl screen\nKd 0.2 0.3 0.4\nmap_Kd screen.png\nmap_Ks shine.png\n")

	m, err := Load(filepath.Join(dir, "quad.obj"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	mat := m.Materials["screen"]
	if mat == nil {
		t.Fatal("material not loaded")
	}
	if mat.DiffuseMap != filepath.Join(dir, "screen.png") {
		t.Errorf("diffuse map = %q", mat.DiffuseMap)
	}
	if mat.SpecularMap != filepath.Join(dir, "shine.png") {
		t.Errorf("specular map = %q", mat.SpecularMap)
	}
	if mat.Color != [3]float32{0.2, 0.3, 0.4} {
		t.Errorf("color = %v", mat.Color)
	}

	write("broken.obj", "mtllib nowhere.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	if _, err := Load(filepath.Join(dir, "broken.obj")); err == nil {
		t.Error("expected error for missing material library")
	}
	if _, err := Load(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("expected error for missing obj")
	}
}

func near3(a, b [3]float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-5 {
			return false
		}
	}
	return true
}
