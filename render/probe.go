package render

import (
	"depth-precision/depth"
	"depth-precision/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// ProbeReading is the depth under the cursor.
type ProbeReading struct {
	Valid    bool
	X, Y     int
	Stored   float32
	Distance float32
}

// ProbePixel maps a cursor position in window coordinates (origin top left) to a pixel of a
// target with the origin in the lower left. The window and target sizes may differ on scaled displays.
func ProbePixel(cursor mgl32.Vec2, windowW, windowH, targetW, targetH int) (x, y int, ok bool) {
	if windowW <= 0 || windowH <= 0 || cursor.X() < 0 || cursor.Y() < 0 {
		return 0, 0, false
	}
	x = int(cursor.X() * float32(targetW) / float32(windowW))
	y = targetH - 1 - int(cursor.Y()*float32(targetH)/float32(windowH))
	if x >= targetW || y < 0 {
		return 0, 0, false
	}
	return x, y, true
}

// Probe reads the stored depth under the cursor and linearizes it with the frame's depth mode.
func (t *Target) Probe(frame scene.Frame, cursor mgl32.Vec2, windowW, windowH int) ProbeReading {
	x, y, ok := ProbePixel(cursor, windowW, windowH, t.Width, t.Height)
	if !ok {
		return ProbeReading{}
	}
	d := t.ReadDepth(x, y)
	return ProbeReading{
		Valid:    true,
		X:        x,
		Y:        y,
		Stored:   d,
		Distance: depth.Linearize(frame.DepthMode(), d, frame.Near(), frame.Far()),
	}
}
