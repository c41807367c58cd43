package camera

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-4

func assertVec3(t *testing.T, want, got mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, epsilon), "expected %v, got %v %v", want, got, msgAndArgs)
}

func TestViewIsInverseOfTransform(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		p := Pose{
			Pivot:  mgl32.Vec3{rng.Float32()*10 - 5, rng.Float32()*10 - 5, rng.Float32()*10 - 5},
			Offset: mgl32.Vec3{0, 0, rng.Float32() * 5},
			Yaw:    rng.Float32()*2*math32.Pi - math32.Pi,
			Pitch:  rng.Float32()*math32.Pi - math32.Pi/2,
		}
		assert.True(t, p.View().Mul4(p.Transform()).ApproxEqualThreshold(mgl32.Ident4(), epsilon))
		assertVec3(t, p.Position(), p.Transform().Col(3).Vec3())
	}
}

func TestDefaultPoseLooksDownNegativeZ(t *testing.T) {
	p := NewPose(mgl32.Vec3{0, 0, 4})
	assertVec3(t, mgl32.Vec3{0, 0, -1}, p.Forward())
	// the origin ends up 4 units in front of the camera
	assertVec3(t, mgl32.Vec3{0, 0, -4}, p.View().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3())
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, 0, WrapAngle(2*math32.Pi), epsilon)
	assert.InDelta(t, -math32.Pi/2, WrapAngle(3*math32.Pi/2), epsilon)
	assert.InDelta(t, math32.Pi/2, WrapAngle(-3*math32.Pi/2), epsilon)
	assert.InDelta(t, 1, WrapAngle(1), epsilon)
}

func TestSmoothFrameRateIndependent(t *testing.T) {
	live := Pose{Pivot: mgl32.Vec3{1, 2, 3}, Yaw: 0.2, Pitch: -0.3}
	target := Pose{Pivot: mgl32.Vec3{-4, 0, 9}, Offset: mgl32.Vec3{0, 0, 2}, Yaw: 2.5, Pitch: 0.7}
	props := SmoothProps{PositionHalfLife: 0.1, RotationHalfLife: 0.05}

	coarse := Smooth(live, target, props, 0.2)
	fine := live
	for i := 0; i < 100; i++ {
		fine = Smooth(fine, target, props, 0.002)
	}

	assertVec3(t, coarse.Pivot, fine.Pivot)
	assertVec3(t, coarse.Offset, fine.Offset)
	assert.InDelta(t, coarse.Yaw, fine.Yaw, epsilon)
	assert.InDelta(t, coarse.Pitch, fine.Pitch, epsilon)

	// two half-lives cover three quarters of the distance
	assertVec3(t, mgl32.Vec3{-2.75, 0.5, 7.5}, coarse.Pivot)
}

func TestSmoothSnapsWithoutHalfLife(t *testing.T) {
	live := Pose{Pivot: mgl32.Vec3{1, 2, 3}, Yaw: 0.2}
	target := Pose{Pivot: mgl32.Vec3{0.1, 0.2, 0.3}, Yaw: -3, Pitch: 1}
	assert.Equal(t, target, Smooth(live, target, SmoothProps{}, 1.0/60))
}

func TestSmoothYawTakesShortestArc(t *testing.T) {
	live := Pose{Yaw: 3}
	target := Pose{Yaw: -3}
	next := Smooth(live, target, SmoothProps{RotationHalfLife: 1}, 0.1)
	// going through pi, so the yaw grows or wraps to negative
	assert.True(t, next.Yaw > 3 || next.Yaw < -3, "yaw %v went the long way", next.Yaw)

	for i := 0; i < 200; i++ {
		next = Smooth(next, target, SmoothProps{RotationHalfLife: 1}, 0.1)
	}
	assert.InDelta(t, -3, next.Yaw, 1e-3)
}

func TestRotateGesture(t *testing.T) {
	rotate := NewRotateInput(ButtonRight, 0.01)
	sys := NewSystem(rotate)
	target := NewPose(mgl32.Vec3{0, 0, 4})

	sys.HandleEvent(Event{Kind: CursorMove, Cursor: mgl32.Vec2{100, 100}})
	sys.HandleEvent(Event{Kind: CursorMove, Cursor: mgl32.Vec2{110, 100}})
	target = sys.Step(target, 1.0/60)
	assert.Equal(t, float32(0), target.Yaw, "idle gesture must not rotate")

	sys.HandleEvent(Event{Kind: ButtonDown, Button: ButtonLeft})
	assert.False(t, rotate.Active())
	sys.HandleEvent(Event{Kind: ButtonDown, Button: ButtonRight})
	assert.True(t, rotate.Active())

	sys.HandleEvent(Event{Kind: CursorMove, Cursor: mgl32.Vec2{120, 105}})
	target = sys.Step(target, 1.0/60)
	assert.InDelta(t, -0.1, target.Yaw, epsilon)
	assert.InDelta(t, -0.05, target.Pitch, epsilon)

	sys.HandleEvent(Event{Kind: ButtonUp, Button: ButtonRight})
	assert.False(t, sys.Active())
	sys.HandleEvent(Event{Kind: CursorMove, Cursor: mgl32.Vec2{200, 200}})
	after := sys.Step(target, 1.0/60)
	assert.Equal(t, target, after)
}

func TestRotateClampsPitch(t *testing.T) {
	rotate := NewRotateInput(ButtonRight, 1)
	rotate.HandleEvent(Event{Kind: ButtonDown, Button: ButtonRight})
	p := rotate.Step(Pose{}, mgl32.Vec2{0, -100}, mgl32.Vec2{}, 0)
	assert.InDelta(t, math32.Pi/2, p.Pitch, epsilon)
	p = rotate.Step(Pose{}, mgl32.Vec2{0, 100}, mgl32.Vec2{}, 0)
	assert.InDelta(t, -math32.Pi/2, p.Pitch, epsilon)
}

func TestTranslateFollowsYaw(t *testing.T) {
	translate := NewTranslateInput(2, 5)
	sys := NewSystem(translate)

	sys.HandleEvent(Event{Kind: KeyDown, Key: KeyW})
	assert.True(t, translate.Active())

	p := sys.Step(Pose{Yaw: math32.Pi / 2}, 0.5)
	// turned left, forward is -X
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, p.Pivot)

	sys.HandleEvent(Event{Kind: KeyDown, Key: KeyShift})
	p = sys.Step(Pose{}, 0.5)
	assertVec3(t, mgl32.Vec3{0, 0, -5}, p.Pivot)

	sys.HandleEvent(Event{Kind: KeyUp, Key: KeyW})
	assert.False(t, translate.Active(), "shift alone does not move")
	assert.Equal(t, Pose{}, sys.Step(Pose{}, 0.5))
}

func TestTranslateDiagonalIsNormalized(t *testing.T) {
	translate := NewTranslateInput(1, 1)
	translate.HandleEvent(Event{Kind: KeyDown, Key: KeyW})
	translate.HandleEvent(Event{Kind: KeyDown, Key: KeyD})
	p := translate.Step(Pose{}, mgl32.Vec2{}, mgl32.Vec2{}, 1)
	assert.InDelta(t, 1, p.Pivot.Len(), epsilon)
}

func TestTranslateZeroValue(t *testing.T) {
	translate := &TranslateInput{Speed: 2}
	assert.False(t, translate.Active())
	assert.NotPanics(t, func() {
		translate.HandleEvent(Event{Kind: KeyUp, Key: KeyW})
		translate.HandleEvent(Event{Kind: KeyDown, Key: KeyW})
	})
	p := translate.Step(Pose{}, mgl32.Vec2{}, mgl32.Vec2{}, 1)
	assertVec3(t, mgl32.Vec3{0, 0, -2}, p.Pivot)
}

func TestPanAndScroll(t *testing.T) {
	pan := NewPanInput(ButtonMiddle, 0.1)
	scroll := NewScrollInput(0.5)
	sys := NewSystem(pan, scroll)

	sys.HandleEvent(Event{Kind: CursorMove, Cursor: mgl32.Vec2{0, 0}})
	sys.HandleEvent(Event{Kind: ButtonDown, Button: ButtonMiddle})
	sys.HandleEvent(Event{Kind: CursorMove, Cursor: mgl32.Vec2{10, 10}})
	p := sys.Step(Pose{}, 1)
	// dragging right and down moves the scene with the cursor
	assertVec3(t, mgl32.Vec3{-1, 1, 0}, p.Pivot)

	sys.HandleEvent(Event{Kind: ButtonUp, Button: ButtonMiddle})
	sys.HandleEvent(Event{Kind: Scroll, Scroll: mgl32.Vec2{0, 2}})
	p = sys.Step(Pose{}, 1)
	assertVec3(t, mgl32.Vec3{0, 0, -1}, p.Pivot)

	// the scroll was consumed
	assert.Equal(t, Pose{}, sys.Step(Pose{}, 1))
}

func TestOrbitKeepsCameraPosition(t *testing.T) {
	orbit := NewOrbitInput(ButtonLeft, ModAlt, 4, 0.01)
	sys := NewSystem(orbit)
	start := NewPose(mgl32.Vec3{0, 0, 4})

	sys.HandleEvent(Event{Kind: ButtonDown, Button: ButtonLeft})
	assert.False(t, orbit.Active(), "orbit needs alt")

	sys.HandleEvent(Event{Kind: CursorMove, Cursor: mgl32.Vec2{0, 0}})
	sys.HandleEvent(Event{Kind: ButtonDown, Button: ButtonLeft, Mods: ModAlt})
	p := sys.Step(start, 1.0/60)
	assertVec3(t, mgl32.Vec3{0, 0, 0}, p.Pivot, "pivot moves to the focus point")
	assertVec3(t, start.Position(), p.Position())

	sys.HandleEvent(Event{Kind: CursorMove, Cursor: mgl32.Vec2{-math32.Pi / 2 / 0.01, 0}})
	p = sys.Step(p, 1.0/60)
	assertVec3(t, mgl32.Vec3{0, 0, 0}, p.Pivot)
	// a quarter turn around the focus point
	assertVec3(t, mgl32.Vec3{4, 0, 0}, p.Position())

	sys.HandleEvent(Event{Kind: ButtonUp, Button: ButtonLeft})
	assert.True(t, orbit.Active(), "release is applied on the next step")
	released := sys.Step(p, 1.0/60)
	assert.False(t, orbit.Active())
	assertVec3(t, mgl32.Vec3{}, released.Offset)
	assertVec3(t, p.Position(), released.Position())
}

func TestOrbitHandOverIsSmooth(t *testing.T) {
	orbit := NewOrbitInput(ButtonLeft, ModAlt, 10, 0.01)
	live := NewPose(mgl32.Vec3{1, 2, 3})
	orbit.HandleEvent(Event{Kind: ButtonDown, Button: ButtonLeft, Mods: ModAlt})
	target := orbit.Step(live, mgl32.Vec2{}, mgl32.Vec2{}, 0)

	for i := 0; i < 10; i++ {
		live = Smooth(live, target, DefaultSmoothProps(), 1.0/60)
		assertVec3(t, mgl32.Vec3{1, 2, 3}, live.Position())
	}
}

func TestSystemRegistry(t *testing.T) {
	rotate := NewRotateInput(ButtonRight, 1)
	scroll := NewScrollInput(1)
	sys := NewSystem(rotate, scroll, rotate)
	assert.Len(t, sys.Inputs(), 2)

	sys.Unregister(rotate)
	assert.Equal(t, []Input{scroll}, sys.Inputs())
	sys.Unregister(rotate)
	assert.Len(t, sys.Inputs(), 1)
}
