// Package controls turns raw input events into camera commands, animation
// triggers and display toggles.
package controls

// Key is a device-independent key code.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyLeftShift
	KeyM
	KeyP
	KeyR
	KeyW
	KeyA
	KeyS
	KeyD
	Key0
	Key1
	Key2
	KeyF12

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:   "unknown",
	KeyEscape:    "escape",
	KeyLeftShift: "left shift",
	KeyM:         "m",
	KeyP:         "p",
	KeyR:         "r",
	KeyW:         "w",
	KeyA:         "a",
	KeyS:         "s",
	KeyD:         "d",
	Key0:         "0",
	Key1:         "1",
	Key2:         "2",
	KeyF12:       "f12",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// EventType tags an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
)

// Event is one input event from the window layer. Width and Height carry the
// drawable size of an EventResize; X and Y the cursor position of an
// EventMouseMove.
type Event struct {
	Type          EventType
	Key           Key
	Repeat        bool // auto-repeated key down
	Width, Height int32
	X, Y          float64
}

// RasterMode is the polygon rasterization mode.
type RasterMode int

const (
	RasterFill RasterMode = iota
	RasterWireframe
	RasterPoints
)

func (m RasterMode) String() string {
	switch m {
	case RasterFill:
		return "fill"
	case RasterWireframe:
		return "wireframe"
	case RasterPoints:
		return "points"
	default:
		return "unknown"
	}
}
