package main

import (
	"depth-precision/camera"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// EventQueue collects window events between two polls.
type EventQueue struct {
	events        []camera.Event
	dumpRequested bool
}

func (q *EventQueue) Push(e camera.Event) {
	q.events = append(q.events, e)
}

// Drain returns the queued events that the overlay does not consume and empties the queue.
func (q *EventQueue) Drain(wantsMouse, wantsKeyboard bool) []camera.Event {
	var result []camera.Event
	for _, e := range q.events {
		if forwardEvent(e, wantsMouse, wantsKeyboard) {
			result = append(result, e)
		}
	}
	q.events = q.events[:0]
	return result
}

// TakeDumpRequest reports whether a dump was requested since the last call.
func (q *EventQueue) TakeDumpRequest() bool {
	requested := q.dumpRequested
	q.dumpRequested = false
	return requested
}

// forwardEvent drops presses while the overlay captures their device.
// Releases and cursor motion always pass so that no gesture stays stuck.
func forwardEvent(e camera.Event, wantsMouse, wantsKeyboard bool) bool {
	switch e.Kind {
	case camera.ButtonDown, camera.Scroll:
		return !wantsMouse
	case camera.KeyDown:
		return !wantsKeyboard
	}
	return true
}

func translateKey(key glfw.Key) camera.Key {
	switch key {
	case glfw.KeyW:
		return camera.KeyW
	case glfw.KeyA:
		return camera.KeyA
	case glfw.KeyS:
		return camera.KeyS
	case glfw.KeyD:
		return camera.KeyD
	case glfw.KeyQ:
		return camera.KeyQ
	case glfw.KeyE:
		return camera.KeyE
	case glfw.KeyLeftShift, glfw.KeyRightShift:
		return camera.KeyShift
	}
	return camera.KeyUnknown
}

func translateButton(button glfw.MouseButton) (camera.Button, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return camera.ButtonLeft, true
	case glfw.MouseButtonRight:
		return camera.ButtonRight, true
	case glfw.MouseButtonMiddle:
		return camera.ButtonMiddle, true
	}
	return 0, false
}

func translateMods(mods glfw.ModifierKey) camera.Modifier {
	var result camera.Modifier
	if mods&glfw.ModShift != 0 {
		result |= camera.ModShift
	}
	if mods&glfw.ModControl != 0 {
		result |= camera.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		result |= camera.ModAlt
	}
	return result
}

// pushKey queues the camera event of a key. Escape quits unless the overlay is editing text.
func (q *EventQueue) pushKey(key glfw.Key, action glfw.Action, mods glfw.ModifierKey, keyboardCaptured bool) {
	switch {
	case action == glfw.Press && key == glfw.KeyEscape:
		if !keyboardCaptured {
			q.Push(camera.Event{Kind: camera.Quit})
		}
	case action == glfw.Press && key == glfw.KeyF12:
		q.dumpRequested = true
	case action == glfw.Press:
		q.Push(camera.Event{Kind: camera.KeyDown, Key: translateKey(key), Mods: translateMods(mods)})
	case action == glfw.Release:
		q.Push(camera.Event{Kind: camera.KeyUp, Key: translateKey(key), Mods: translateMods(mods)})
	}
}

// installCallbacks feeds window input into both the overlay and the queue.
func installCallbacks(win *glfw.Window, io imgui.IO, q *EventQueue) {
	win.SetCursorPosCallback(func(w *glfw.Window, mx, my float64) {
		io.SetMousePosition(imgui.Vec2{X: float32(mx), Y: float32(my)})
		q.Push(camera.Event{Kind: camera.CursorMove, Cursor: mgl32.Vec2{float32(mx), float32(my)}})
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		io.SetMouseButtonDown(int(button), action == glfw.Press)
		b, ok := translateButton(button)
		if !ok {
			return
		}
		kind := camera.ButtonUp
		if action == glfw.Press {
			kind = camera.ButtonDown
		}
		q.Push(camera.Event{Kind: kind, Button: b, Mods: translateMods(mods)})
	})
	win.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		io.AddMouseWheelDelta(float32(x), float32(y))
		q.Push(camera.Event{Kind: camera.Scroll, Scroll: mgl32.Vec2{float32(x), float32(y)}})
	})
	win.SetCharCallback(func(w *glfw.Window, char rune) {
		io.AddInputCharacters(string(char))
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			io.KeyPress(int(key))
		}
		if action == glfw.Release {
			io.KeyRelease(int(key))
		}

		// Modifiers are not reliable across systems
		io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
		io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
		io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
		io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))

		q.pushKey(key, action, mods, io.WantCaptureKeyboard())
	})
	win.SetCloseCallback(func(w *glfw.Window) {
		q.Push(camera.Event{Kind: camera.Quit})
	})
}
