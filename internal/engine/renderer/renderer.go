// Package renderer owns the global OpenGL state of the window's context.
package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/witchhut/internal/controls"
	"github.com/Faultbox/witchhut/internal/logger"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Config holds renderer configuration.
type Config struct {
	Width, Height int32
	ClearColor    [3]float32
}

// Renderer is the GL device: default framebuffer, depth, blending, culling
// and rasterization state.
type Renderer struct {
	config Config
}

// New initializes OpenGL and sets the default pipeline state.
// Must be called after the GL context is current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	r := &Renderer{config: cfg}

	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.Enable(gl.MULTISAMPLE)
	gl.Viewport(0, 0, cfg.Width, cfg.Height)

	return r, nil
}

// Size returns the current drawable size.
func (r *Renderer) Size() (int32, int32) {
	return r.config.Width, r.config.Height
}

// Resize records a new drawable size. Zero sizes (minimized windows) are ignored.
func (r *Renderer) Resize(width, height int32) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, width, height)
	logger.Debug("renderer resized",
		zap.Int32("width", width),
		zap.Int32("height", height),
	)
	return true
}

// BeginFrame binds the default framebuffer, sets the viewport and clears.
func (r *Renderer) BeginFrame(width, height int32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, width, height)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetDepthTest enables or disables depth testing.
func (r *Renderer) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

// BeginAdditive switches to additive blending with depth writes and face
// culling disabled.
func (r *Renderer) BeginAdditive() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.DepthMask(false)
	gl.Disable(gl.CULL_FACE)
}

// EndAdditive restores the state changed by BeginAdditive.
func (r *Renderer) EndAdditive() {
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
}

// SetRaster sets the polygon mode for both faces.
func (r *Renderer) SetRaster(mode controls.RasterMode) {
	switch mode {
	case controls.RasterWireframe:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	case controls.RasterPoints:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.POINT)
	default:
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// ReadPixels returns the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int32) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, int(width)*int(height)*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// CheckErrors drains the GL error queue and logs each error. It returns the
// number of errors seen.
func (r *Renderer) CheckErrors(where string) int {
	n := 0
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		n++
		logger.Warn("gl error",
			zap.String("where", where),
			zap.String("error", ErrorName(code)),
			zap.Uint32("code", code),
		)
		// A lost context keeps reporting; don't spin on it.
		if n >= 32 {
			break
		}
	}
	return n
}
