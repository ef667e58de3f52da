// Package input translates SDL2 events into controls events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/witchhut/internal/controls"
)

// DrawableSizer reports the framebuffer size after a resize.
type DrawableSizer interface {
	DrawableSize() (int32, int32)
}

var scancodes = map[sdl.Scancode]controls.Key{
	sdl.SCANCODE_ESCAPE: controls.KeyEscape,
	sdl.SCANCODE_LSHIFT: controls.KeyLeftShift,
	sdl.SCANCODE_M:      controls.KeyM,
	sdl.SCANCODE_P:      controls.KeyP,
	sdl.SCANCODE_R:      controls.KeyR,
	sdl.SCANCODE_W:      controls.KeyW,
	sdl.SCANCODE_A:      controls.KeyA,
	sdl.SCANCODE_S:      controls.KeyS,
	sdl.SCANCODE_D:      controls.KeyD,
	sdl.SCANCODE_0:      controls.Key0,
	sdl.SCANCODE_1:      controls.Key1,
	sdl.SCANCODE_2:      controls.Key2,
	sdl.SCANCODE_F12:    controls.KeyF12,
}

// Input polls SDL once per frame.
type Input struct {
	window DrawableSizer
	events []controls.Event

	// Cursor position integrated from relative motion, so look input keeps
	// working while SDL hides and pins the real cursor.
	cursorX, cursorY float64
}

// New creates an input handler for the given window.
func New(window DrawableSizer) *Input {
	return &Input{
		window: window,
		events: make([]controls.Event, 0, 16),
	}
}

// Poll drains the SDL event queue and returns the translated events. The
// slice is reused by the next call.
func (i *Input) Poll() []controls.Event {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, controls.Event{Type: controls.EventQuit})

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				w, h := i.window.DrawableSize()
				i.events = append(i.events, controls.Event{
					Type:   controls.EventResize,
					Width:  w,
					Height: h,
				})
			}

		case *sdl.KeyboardEvent:
			key, ok := scancodes[e.Keysym.Scancode]
			if !ok {
				continue
			}
			ev := controls.Event{Key: key, Repeat: e.Repeat != 0}
			if e.Type == sdl.KEYDOWN {
				ev.Type = controls.EventKeyDown
			} else {
				ev.Type = controls.EventKeyUp
			}
			i.events = append(i.events, ev)

		case *sdl.MouseMotionEvent:
			i.cursorX += float64(e.XRel)
			i.cursorY += float64(e.YRel)
			i.events = append(i.events, controls.Event{
				Type: controls.EventMouseMove,
				X:    i.cursorX,
				Y:    i.cursorY,
			})
		}
	}

	return i.events
}
