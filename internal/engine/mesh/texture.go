package mesh

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/witchhut/internal/engine/texture"
	"github.com/Faultbox/witchhut/internal/logger"
)

// Texture is a 2D GL texture.
type Texture struct {
	ID            uint32
	Width, Height int32
}

// UploadTexture creates a mipmapped, repeating 2D texture from img. Color
// textures use an sRGB internal format so lighting happens in linear space.
func UploadTexture(img *image.RGBA, srgb bool) *Texture {
	flipped := image.NewRGBA(img.Bounds())
	copy(flipped.Pix, img.Pix)
	texture.FlipVertical(flipped)

	internal := int32(gl.RGBA8)
	if srgb {
		internal = gl.SRGB8_ALPHA8
	}

	t := &Texture{
		Width:  int32(img.Bounds().Dx()),
		Height: int32(img.Bounds().Dy()),
	}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, t.Width, t.Height, 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(flipped.Pix))

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return t
}

// WhiteTexture returns a 1x1 opaque white texture for materials without a map.
func WhiteTexture() *Texture {
	return UploadTexture(texture.Solid([3]float32{1, 1, 1}), false)
}

// Bind binds the texture to texture unit unit.
func (t *Texture) Bind(unit int32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

// Delete releases the GL texture.
func (t *Texture) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// TextureCache loads each texture file once and shares it between meshes.
type TextureCache struct {
	textures map[cacheKey]*Texture
	colors   map[[3]float32]*Texture
	white    *Texture
}

type cacheKey struct {
	path string
	srgb bool
}

// NewTextureCache returns an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{
		textures: make(map[cacheKey]*Texture),
		colors:   make(map[[3]float32]*Texture),
	}
}

// Get returns the texture for path, loading it on first use. An empty path
// yields the shared white texture.
func (c *TextureCache) Get(path string, srgb bool) (*Texture, error) {
	if path == "" {
		if c.white == nil {
			c.white = WhiteTexture()
		}
		return c.white, nil
	}
	key := cacheKey{path, srgb}
	if t, ok := c.textures[key]; ok {
		return t, nil
	}

	img, err := texture.LoadImage(path)
	if err != nil {
		return nil, err
	}
	t := UploadTexture(img, srgb)
	c.textures[key] = t
	logger.Debug("texture loaded",
		zap.String("path", path),
		zap.Int32("width", t.Width),
		zap.Int32("height", t.Height),
	)
	return t, nil
}

// Color returns a shared 1x1 sRGB texture of the diffuse color rgb.
func (c *TextureCache) Color(rgb [3]float32) *Texture {
	if t, ok := c.colors[rgb]; ok {
		return t
	}
	t := UploadTexture(texture.Solid(rgb), true)
	c.colors[rgb] = t
	return t
}

// Len returns the number of file textures held.
func (c *TextureCache) Len() int { return len(c.textures) }

// Delete releases every texture in the cache.
func (c *TextureCache) Delete() {
	for k, t := range c.textures {
		t.Delete()
		delete(c.textures, k)
	}
	for k, t := range c.colors {
		t.Delete()
		delete(c.colors, k)
	}
	if c.white != nil {
		c.white.Delete()
		c.white = nil
	}
}
