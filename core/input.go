package core

import "github.com/go-gl/glfw/v3.3/glfw"

type Key int

const (
	KeyW          = Key(glfw.KeyW)
	KeyS          = Key(glfw.KeyS)
	KeyA          = Key(glfw.KeyA)
	KeyD          = Key(glfw.KeyD)
	KeyX          = Key(glfw.KeyX)
	KeySpace      = Key(glfw.KeySpace)
	KeyLeftShift  = Key(glfw.KeyLeftShift)
	KeyT          = Key(glfw.KeyT)
	KeyG          = Key(glfw.KeyG)
	KeyF          = Key(glfw.KeyF)
	KeyH          = Key(glfw.KeyH)
	KeyY          = Key(glfw.KeyY)
	KeyB          = Key(glfw.KeyB)
	KeyUp         = Key(glfw.KeyUp)
	KeyDown       = Key(glfw.KeyDown)
	KeyLeft       = Key(glfw.KeyLeft)
	KeyRight      = Key(glfw.KeyRight)
	KeyKPAdd      = Key(glfw.KeyKPAdd)
	KeyKPSubtract = Key(glfw.KeyKPSubtract)
	KeyEscape     = Key(glfw.KeyEscape)
	KeyP          = Key(glfw.KeyP)
	KeyM          = Key(glfw.KeyM)
	KeyO          = Key(glfw.KeyO)
	KeyV          = Key(glfw.KeyV)
	KeyL          = Key(glfw.KeyL)
	KeyC          = Key(glfw.KeyC)
	Key1          = Key(glfw.Key1)
	Key2          = Key(glfw.Key2)
	Key3          = Key(glfw.Key3)
	KeyKP1        = Key(glfw.KeyKP1)
	KeyKP2        = Key(glfw.KeyKP2)
	KeyKP3        = Key(glfw.KeyKP3)
	KeyF1         = Key(glfw.KeyF1)
	KeyF2         = Key(glfw.KeyF2)
	KeyF3         = Key(glfw.KeyF3)
	KeyF4         = Key(glfw.KeyF4)
)

var trackedKeys = []Key{
	KeyW, KeyS, KeyA, KeyD, KeyX, KeySpace, KeyLeftShift,
	KeyT, KeyG, KeyF, KeyH, KeyY, KeyB,
	KeyUp, KeyDown, KeyLeft, KeyRight, KeyKPAdd, KeyKPSubtract,
	KeyEscape, KeyP, KeyM, KeyO, KeyV, KeyL, KeyC,
	Key1, Key2, Key3, KeyKP1, KeyKP2, KeyKP3,
	KeyF1, KeyF2, KeyF3, KeyF4,
}

// InputSnapshot is the per-frame view of the keyboard and mouse. Movement
// reads Held so it is continuous; toggles read Pressed so they fire once.
type InputSnapshot struct {
	held    map[Key]bool
	prev    map[Key]bool
	MouseDX float32
	MouseDY float32 // positive when the mouse moves up
	Scroll  float32
}

// NewInputSnapshot builds a snapshot with the given keys held and nothing
// held on the previous frame.
func NewInputSnapshot(held ...Key) InputSnapshot {
	s := InputSnapshot{held: make(map[Key]bool, len(held))}
	for _, k := range held {
		s.held[k] = true
	}
	return s
}

func (s InputSnapshot) Held(k Key) bool { return s.held[k] }

// Pressed reports a key that went down since the previous snapshot.
func (s InputSnapshot) Pressed(k Key) bool { return s.held[k] && !s.prev[k] }

type inputState struct {
	prev         map[Key]bool
	lastX, lastY float64
	dx, dy       float32
	scroll       float32
	seenCursor   bool
}

func (in *inputState) cursorMoved(x, y float64) {
	if !in.seenCursor {
		in.lastX, in.lastY = x, y
		in.seenCursor = true
	}
	in.dx += float32(x - in.lastX)
	in.dy += float32(in.lastY - y)
	in.lastX, in.lastY = x, y
}

// Snapshot samples every tracked key and drains the accumulated mouse and
// scroll deltas. Call once per frame after PollEvents.
func (w *Window) Snapshot() InputSnapshot {
	held := make(map[Key]bool, len(trackedKeys))
	for _, k := range trackedKeys {
		if w.Handle.GetKey(glfw.Key(k)) == glfw.Press {
			held[k] = true
		}
	}
	s := InputSnapshot{
		held:    held,
		prev:    w.input.prev,
		MouseDX: w.input.dx,
		MouseDY: w.input.dy,
		Scroll:  w.input.scroll,
	}
	w.input.prev = held
	w.input.dx, w.input.dy, w.input.scroll = 0, 0, 0
	return s
}

// After returns s with prev as the previous frame, so Pressed only reports
// keys that were up in prev.
func (s InputSnapshot) After(prev InputSnapshot) InputSnapshot {
	s.prev = prev.held
	return s
}
