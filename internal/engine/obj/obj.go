// Package obj turns Wavefront OBJ meshes and their MTL material libraries
// into one interleaved vertex array with per-material index ranges.
package obj

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/udhos/gwob"
	"go.uber.org/zap"

	"github.com/Faultbox/witchhut/internal/logger"
)

// Vertex is one interleaved vertex: position, normal, texture coordinate.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Part is a run of indices drawn with one material.
type Part struct {
	Material string
	First    int
	Count    int
}

// Model is a parsed OBJ file.
type Model struct {
	Vertices  []Vertex
	Indices   []uint32
	Parts     []Part
	Materials map[string]*Material
	// MaterialLib is the mtllib file named by the OBJ, if any.
	MaterialLib string
}

// Triangles returns the total triangle count.
func (m *Model) Triangles() int {
	return len(m.Indices) / 3
}

func parserOptions() *gwob.ObjParserOptions {
	log := logger.Named("obj")
	return &gwob.ObjParserOptions{
		Logger: func(msg string) { log.Debug(msg) },
	}
}

// Parse reads an OBJ file held in memory. name is only used in messages.
// Materials are left empty; see Load.
func Parse(name string, data []byte) (*Model, error) {
	o, err := gwob.NewObjFromBuf(name, data, parserOptions())
	if err != nil {
		return nil, err
	}
	return fromObj(o)
}

// Load parses the OBJ file at path and the material library it names,
// resolved relative to the file's directory. Texture paths in the materials
// are made relative to the same directory.
func Load(path string) (*Model, error) {
	o, err := gwob.NewObjFromFile(path, parserOptions())
	if err != nil {
		return nil, err
	}
	m, err := fromObj(o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.MaterialLib == "" {
		return m, nil
	}

	dir := filepath.Dir(path)
	mats, err := LoadMTL(filepath.Join(dir, m.MaterialLib))
	if err != nil {
		return nil, err
	}
	for name, mat := range mats {
		mat.resolve(dir)
		m.Materials[name] = mat
	}
	return m, nil
}

func fromObj(o *gwob.Obj) (*Model, error) {
	stride := o.StrideSize / 4
	if stride < 3 {
		return nil, fmt.Errorf("bad vertex stride %d", o.StrideSize)
	}
	if len(o.Coord)%stride != 0 {
		return nil, fmt.Errorf("%d coordinates do not fill %d-float vertices", len(o.Coord), stride)
	}

	m := &Model{
		Vertices:    make([]Vertex, len(o.Coord)/stride),
		Indices:     make([]uint32, len(o.Indices)),
		Materials:   map[string]*Material{},
		MaterialLib: o.Mtllib,
	}

	pos := o.StrideOffsetPosition / 4
	tex := o.StrideOffsetTexture / 4
	norm := o.StrideOffsetNormal / 4
	for i := range m.Vertices {
		c := o.Coord[i*stride : (i+1)*stride]
		v := &m.Vertices[i]
		copy(v.Position[:], c[pos:pos+3])
		if o.TextCoordFound {
			copy(v.TexCoord[:], c[tex:tex+2])
		}
		if o.NormCoordFound {
			copy(v.Normal[:], c[norm:norm+3])
		}
	}

	for i, idx := range o.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return nil, fmt.Errorf("index %d out of range [0, %d)", idx, len(m.Vertices))
		}
		m.Indices[i] = uint32(idx)
	}
	if len(m.Indices)%3 != 0 {
		return nil, fmt.Errorf("%d indices is not a triangle list", len(m.Indices))
	}

	for _, g := range o.Groups {
		if g.IndexCount == 0 {
			continue
		}
		if g.IndexBegin < 0 || g.IndexBegin+g.IndexCount > len(m.Indices) {
			return nil, fmt.Errorf("group %q range [%d, %d) exceeds %d indices",
				g.Name, g.IndexBegin, g.IndexBegin+g.IndexCount, len(m.Indices))
		}
		// Consecutive groups with the same material draw as one part.
		if n := len(m.Parts); n > 0 {
			last := &m.Parts[n-1]
			if last.Material == g.Usemtl && last.First+last.Count == g.IndexBegin {
				last.Count += g.IndexCount
				continue
			}
		}
		m.Parts = append(m.Parts, Part{Material: g.Usemtl, First: g.IndexBegin, Count: g.IndexCount})
	}

	if !o.NormCoordFound {
		smoothNormals(m.Vertices, m.Indices)
	}

	logger.Named("obj").Debug("parsed",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.Triangles()),
		zap.Int("parts", len(m.Parts)),
	)
	return m, nil
}

// smoothNormals sets each vertex normal to the normalized sum of the face
// normals around it, weighted by face area.
func smoothNormals(verts []Vertex, indices []uint32) {
	for i := range verts {
		verts[i].Normal = [3]float32{}
	}
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		n := cross(sub(verts[b].Position, verts[a].Position), sub(verts[c].Position, verts[a].Position))
		for _, i := range [3]uint32{a, b, c} {
			for k := 0; k < 3; k++ {
				verts[i].Normal[k] += n[k]
			}
		}
	}
	for i := range verts {
		verts[i].Normal = normalize(verts[i].Normal)
	}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(u, v [3]float32) [3]float32 {
	return [3]float32{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

func normalize(n [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if l == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{n[0] / l, n[1] / l, n[2] / l}
}
