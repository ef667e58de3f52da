// Package mesh uploads parsed OBJ models to the GPU and draws them.
package mesh

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/witchhut/internal/engine/obj"
	"github.com/Faultbox/witchhut/internal/logger"
	"github.com/Faultbox/witchhut/internal/render"
)

// Texture units the scene shader samples material maps from.
const (
	DiffuseUnit  = 0
	SpecularUnit = 1
)

// part is one material range of a model's index buffer.
type part struct {
	first, count int32
	diffuse      *Texture
	specular     *Texture
}

// Model is a drawable OBJ model.
type Model struct {
	Path          string
	vao, vbo, ebo uint32
	parts         []part
}

// Load parses the OBJ file at path and uploads it. Textures come from cache.
func Load(path string, cache *TextureCache) (*Model, error) {
	src, err := obj.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load mesh %s: %w", path, err)
	}

	m := &Model{Path: path}
	for _, sp := range src.Parts {
		p, err := materialPart(sp, src.Materials[sp.Material], cache)
		if err != nil {
			return nil, fmt.Errorf("mesh %s material %q: %w", path, sp.Material, err)
		}
		m.parts = append(m.parts, p)
	}
	m.upload(src)

	logger.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("parts", len(m.parts)),
		zap.Int("triangles", src.Triangles()),
	)
	return m, nil
}

// materialPart resolves the textures of one index range. Without a diffuse
// map the material's diffuse color is used.
func materialPart(sp obj.Part, mat *obj.Material, cache *TextureCache) (part, error) {
	p := part{first: int32(sp.First), count: int32(sp.Count)}

	var err error
	switch {
	case mat == nil:
		p.diffuse, err = cache.Get("", true)
	case mat.DiffuseMap == "":
		p.diffuse = cache.Color(mat.Color)
	default:
		p.diffuse, err = cache.Get(mat.DiffuseMap, true)
	}
	if err != nil {
		return part{}, err
	}

	var specularPath string
	if mat != nil {
		specularPath = mat.SpecularMap
	}
	p.specular, err = cache.Get(specularPath, false)
	if err != nil {
		return part{}, err
	}
	return p, nil
}

func (m *Model) upload(src *obj.Model) {
	stride := int32(unsafe.Sizeof(obj.Vertex{}))

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(src.Vertices)*int(stride), gl.Ptr(src.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(src.Indices)*4, gl.Ptr(src.Indices), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(obj.Vertex{}.Position))
	gl.EnableVertexAttribArray(0)
	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(obj.Vertex{}.Normal))
	gl.EnableVertexAttribArray(1)
	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(obj.Vertex{}.TexCoord))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
}

// Draw binds each part's material maps and draws it with the program in use.
func (m *Model) Draw(p render.Program) {
	p.SetInt("diffuseTexture", DiffuseUnit)
	p.SetInt("specularTexture", SpecularUnit)
	gl.BindVertexArray(m.vao)
	for i := range m.parts {
		part := &m.parts[i]
		part.diffuse.Bind(DiffuseUnit)
		part.specular.Bind(SpecularUnit)
		gl.DrawElements(gl.TRIANGLES, part.count, gl.UNSIGNED_INT, gl.PtrOffset(int(part.first)*4))
	}
	gl.BindVertexArray(0)
}

// Delete releases the vertex buffers. Textures belong to the cache.
func (m *Model) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
		m.vao, m.vbo, m.ebo = 0, 0, 0
	}
	m.parts = nil
}
