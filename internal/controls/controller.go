package controls

import (
	"github.com/Faultbox/witchhut/internal/engine/animation"
	"github.com/Faultbox/witchhut/internal/engine/camera"
	"github.com/Faultbox/witchhut/internal/render"
)

// Settings tunes the controller.
type Settings struct {
	MoveSpeed        float32 // world units per frame
	MouseSensitivity float32 // degrees per cursor unit
	InitialYaw       float32
	InitialPitch     float32
	PitchLimit       float32
}

// Controller applies input to the camera rig and the animation state and
// tracks the display toggles. It is driven by the frame loop only.
type Controller struct {
	rig  *camera.Rig
	anim *animation.State
	cfg  Settings

	held [keyCount]bool

	yaw, pitch   float32
	captured     bool
	firstMouse   bool
	lastX, lastY float64

	quit          bool
	pass          render.RenderPass
	raster        RasterMode
	rasterChanged bool
	captureDirty  bool
	width, height int32
	resized       bool
	screenshot    bool
}

// New returns a controller with the mouse captured, as at startup.
func New(rig *camera.Rig, anim *animation.State, cfg Settings) *Controller {
	return &Controller{
		rig:          rig,
		anim:         anim,
		cfg:          cfg,
		yaw:          cfg.InitialYaw,
		pitch:        cfg.InitialPitch,
		captured:     true,
		firstMouse:   true,
		captureDirty: true,
	}
}

// Handle processes one event.
func (c *Controller) Handle(e Event) {
	switch e.Type {
	case EventQuit:
		c.quit = true
	case EventResize:
		if e.Width <= 0 || e.Height <= 0 {
			return
		}
		c.width, c.height = e.Width, e.Height
		c.resized = true
	case EventKeyDown:
		if e.Key >= 0 && e.Key < keyCount {
			c.held[e.Key] = true
		}
		if !e.Repeat {
			c.press(e.Key)
		}
	case EventKeyUp:
		if e.Key >= 0 && e.Key < keyCount {
			c.held[e.Key] = false
		}
	case EventMouseMove:
		c.look(e.X, e.Y)
	}
}

func (c *Controller) press(k Key) {
	switch k {
	case KeyEscape:
		c.quit = true
	case KeyM:
		c.pass = c.pass.Toggle()
	case KeyLeftShift:
		c.captured = !c.captured
		c.captureDirty = true
		if c.captured {
			c.firstMouse = true
		}
	case KeyP:
		c.anim.Teapot.Trigger()
	case Key0:
		c.setRaster(RasterFill)
	case Key1:
		c.setRaster(RasterWireframe)
	case Key2:
		c.setRaster(RasterPoints)
	case KeyF12:
		c.screenshot = true
	}
}

func (c *Controller) setRaster(m RasterMode) {
	c.raster = m
	c.rasterChanged = true
}

// look turns the camera by the cursor delta. The first event after capture
// only records the position.
func (c *Controller) look(x, y float64) {
	if !c.captured {
		return
	}
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
	}
	dx := float32(x-c.lastX) * c.cfg.MouseSensitivity
	dy := float32(c.lastY-y) * c.cfg.MouseSensitivity
	c.lastX, c.lastY = x, y

	c.yaw += dx
	c.pitch += dy
	if c.pitch > c.cfg.PitchLimit {
		c.pitch = c.cfg.PitchLimit
	}
	if c.pitch < -c.cfg.PitchLimit {
		c.pitch = -c.cfg.PitchLimit
	}
	c.rig.Rotate(c.pitch, c.yaw)
}

// Update applies the held movement keys for one frame.
func (c *Controller) Update() {
	moves := [...]struct {
		key Key
		dir camera.Direction
	}{
		{KeyW, camera.Forward},
		{KeyS, camera.Backward},
		{KeyA, camera.Left},
		{KeyD, camera.Right},
	}
	for _, m := range moves {
		if c.held[m.key] {
			c.rig.Move(m.dir, c.cfg.MoveSpeed)
		}
	}
}

// Held reports whether k is currently down.
func (c *Controller) Held(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return c.held[k]
}

// CatHeld reports whether the cat rotation key is down.
func (c *Controller) CatHeld() bool { return c.held[KeyR] }

// Quit reports whether a quit was requested.
func (c *Controller) Quit() bool { return c.quit }

// Pass returns the selected render pass.
func (c *Controller) Pass() render.RenderPass { return c.pass }

// Captured reports whether the mouse is captured.
func (c *Controller) Captured() bool { return c.captured }

// Yaw returns the accumulated yaw in degrees.
func (c *Controller) Yaw() float32 { return c.yaw }

// Pitch returns the clamped pitch in degrees.
func (c *Controller) Pitch() float32 { return c.pitch }

// Raster returns the current raster mode.
func (c *Controller) Raster() RasterMode { return c.raster }

// TakeRaster returns the raster mode if it changed since the last call.
func (c *Controller) TakeRaster() (RasterMode, bool) {
	changed := c.rasterChanged
	c.rasterChanged = false
	return c.raster, changed
}

// TakeCapture returns the capture state if it changed since the last call.
func (c *Controller) TakeCapture() (bool, bool) {
	changed := c.captureDirty
	c.captureDirty = false
	return c.captured, changed
}

// TakeResize returns the new drawable size if one arrived since the last call.
func (c *Controller) TakeResize() (width, height int32, ok bool) {
	ok = c.resized
	c.resized = false
	return c.width, c.height, ok
}

// TakeScreenshot reports whether a screenshot was requested since the last call.
func (c *Controller) TakeScreenshot() bool {
	req := c.screenshot
	c.screenshot = false
	return req
}
