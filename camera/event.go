package camera

import "github.com/go-gl/mathgl/mgl32"

type EventKind int

const (
	CursorMove EventKind = iota
	ButtonDown
	ButtonUp
	Scroll
	KeyDown
	KeyUp
	Quit
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyShift
)

type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// Event is a windowing system independent input event.
// Cursor is the absolute cursor position in window pixels, Scroll the wheel offset.
type Event struct {
	Kind   EventKind
	Cursor mgl32.Vec2
	Scroll mgl32.Vec2
	Button Button
	Key    Key
	Mods   Modifier
}
