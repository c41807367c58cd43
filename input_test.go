package main

import (
	"testing"

	"depth-precision/camera"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestDrainFiltersCapturedPresses(t *testing.T) {
	q := &EventQueue{}
	q.Push(camera.Event{Kind: camera.ButtonDown, Button: camera.ButtonRight})
	q.Push(camera.Event{Kind: camera.CursorMove})
	q.Push(camera.Event{Kind: camera.Scroll})
	q.Push(camera.Event{Kind: camera.ButtonUp, Button: camera.ButtonRight})
	q.Push(camera.Event{Kind: camera.KeyDown, Key: camera.KeyW})
	q.Push(camera.Event{Kind: camera.KeyUp, Key: camera.KeyW})
	q.Push(camera.Event{Kind: camera.Quit})

	got := q.Drain(true, false)
	kinds := make([]camera.EventKind, len(got))
	for i, e := range got {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []camera.EventKind{camera.CursorMove, camera.ButtonUp, camera.KeyDown, camera.KeyUp, camera.Quit}, kinds)
	assert.Empty(t, q.Drain(false, false), "drained events are gone")
}

func TestForwardEventKeyboardCapture(t *testing.T) {
	assert.False(t, forwardEvent(camera.Event{Kind: camera.KeyDown}, false, true))
	assert.True(t, forwardEvent(camera.Event{Kind: camera.KeyUp}, false, true))
	assert.True(t, forwardEvent(camera.Event{Kind: camera.ButtonDown}, false, true))
}

func TestTakeDumpRequest(t *testing.T) {
	q := &EventQueue{dumpRequested: true}
	assert.True(t, q.TakeDumpRequest())
	assert.False(t, q.TakeDumpRequest())
}

func TestEscapeQuitsOnlyWithoutKeyboardCapture(t *testing.T) {
	q := &EventQueue{}
	q.pushKey(glfw.KeyEscape, glfw.Press, 0, true)
	assert.Empty(t, q.Drain(false, true))

	q.pushKey(glfw.KeyEscape, glfw.Press, 0, false)
	assert.Equal(t, []camera.Event{{Kind: camera.Quit}}, q.Drain(false, false))

	q.pushKey(glfw.KeyEscape, glfw.Release, 0, false)
	assert.Equal(t, []camera.Event{{Kind: camera.KeyUp, Key: camera.KeyUnknown}}, q.Drain(false, false))
}

func TestPushKey(t *testing.T) {
	q := &EventQueue{}
	q.pushKey(glfw.KeyW, glfw.Press, glfw.ModShift, false)
	q.pushKey(glfw.KeyF12, glfw.Press, 0, false)
	q.pushKey(glfw.KeyW, glfw.Repeat, 0, false)
	q.pushKey(glfw.KeyW, glfw.Release, 0, false)

	assert.Equal(t, []camera.Event{
		{Kind: camera.KeyDown, Key: camera.KeyW, Mods: camera.ModShift},
		{Kind: camera.KeyUp, Key: camera.KeyW},
	}, q.Drain(false, false))
	assert.True(t, q.TakeDumpRequest())
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, camera.KeyShift, translateKey(glfw.KeyRightShift))
	assert.Equal(t, camera.KeyUnknown, translateKey(glfw.KeyF1))
	assert.Equal(t, camera.ModShift|camera.ModAlt, translateMods(glfw.ModShift|glfw.ModAlt))

	b, ok := translateButton(glfw.MouseButtonMiddle)
	assert.True(t, ok)
	assert.Equal(t, camera.ButtonMiddle, b)
	_, ok = translateButton(glfw.MouseButton4)
	assert.False(t, ok)
}
