// Package skybox draws a cubemap behind the scene.
package skybox

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/witchhut/internal/engine/texture"
	"github.com/Faultbox/witchhut/internal/render"
)

// Skybox is a unit cube textured with a cubemap.
type Skybox struct {
	cubemap  *Cubemap
	vao, vbo uint32
}

// Load reads the six face images, in the order right, left, top, bottom,
// back, front, and builds the skybox.
func Load(faces []string) (*Skybox, error) {
	if len(faces) != 6 {
		return nil, fmt.Errorf("skybox needs 6 faces, got %d", len(faces))
	}
	var imgs [6]*image.RGBA
	for i, path := range faces {
		img, err := texture.LoadImage(path)
		if err != nil {
			return nil, fmt.Errorf("skybox face %d: %w", i, err)
		}
		imgs[i] = img
	}

	cm, err := NewCubemap(imgs)
	if err != nil {
		return nil, err
	}

	s := &Skybox{cubemap: cm}
	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return s, nil
}

// Draw renders the sky with the program in use. view should carry rotation
// only. Depth is compared with LEQUAL so the sky, written at the far plane,
// passes where nothing else was drawn.
func (s *Skybox) Draw(p render.Program, view, projection mgl32.Mat4) {
	p.SetMat4("view", view)
	p.SetMat4("projection", projection)
	s.cubemap.Bind(0)
	p.SetInt("skybox", 0)

	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(cubeVertices)/3))
	gl.BindVertexArray(0)
	gl.Enable(gl.CULL_FACE)
	gl.DepthFunc(gl.LESS)
}

// Delete releases the GL resources.
func (s *Skybox) Delete() {
	s.cubemap.Delete()
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
		s.vbo = 0
	}
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		s.vao = 0
	}
}

var cubeVertices = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}
