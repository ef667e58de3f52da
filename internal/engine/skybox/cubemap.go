package skybox

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Cubemap is a six-face cube texture.
type Cubemap struct {
	ID uint32
}

// NewCubemap uploads faces in the order +X, -X, +Y, -Y, +Z, -Z.
func NewCubemap(faces [6]*image.RGBA) (*Cubemap, error) {
	cm := &Cubemap{}
	gl.GenTextures(1, &cm.ID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, cm.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	for i, face := range faces {
		if face == nil {
			cm.Delete()
			return nil, fmt.Errorf("cubemap face %d missing", i)
		}
		b := face.Bounds()
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.SRGB8_ALPHA8,
			int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(face.Pix))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	return cm, nil
}

// Bind binds the cubemap to texture unit unit.
func (cm *Cubemap) Bind(unit int32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, cm.ID)
}

// Delete releases the GL texture.
func (cm *Cubemap) Delete() {
	if cm.ID != 0 {
		gl.DeleteTextures(1, &cm.ID)
		cm.ID = 0
	}
}
