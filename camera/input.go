package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Input is one camera gesture. HandleEvent only updates the gesture state,
// Step applies the gesture to a target pose.
type Input interface {
	HandleEvent(e Event)
	Active() bool
	Step(target Pose, cursorDelta, scrollDelta mgl32.Vec2, dt float32) Pose
}

type gestureState int

const (
	idle gestureState = iota
	active
)

// buttonGesture is active between a press and a release of one button,
// optionally only when the press carried all of the required modifiers.
type buttonGesture struct {
	button   Button
	required Modifier
	state    gestureState
}

func (g *buttonGesture) handle(e Event) {
	switch e.Kind {
	case ButtonDown:
		if e.Button == g.button && e.Mods&g.required == g.required {
			g.state = active
		}
	case ButtonUp:
		if e.Button == g.button {
			g.state = idle
		}
	}
}

// RotateInput turns the camera around its pivot while the button is held.
type RotateInput struct {
	gesture buttonGesture
	// radians per pixel
	Sensitivity float32
}

func NewRotateInput(button Button, sensitivity float32) *RotateInput {
	return &RotateInput{
		gesture:     buttonGesture{button: button},
		Sensitivity: sensitivity,
	}
}

func (in *RotateInput) HandleEvent(e Event) {
	in.gesture.handle(e)
}

func (in *RotateInput) Active() bool {
	return in.gesture.state == active
}

func (in *RotateInput) Step(target Pose, cursorDelta, scrollDelta mgl32.Vec2, dt float32) Pose {
	if !in.Active() {
		return target
	}
	return turn(target, cursorDelta, in.Sensitivity)
}

func turn(p Pose, cursorDelta mgl32.Vec2, sensitivity float32) Pose {
	p.Yaw = WrapAngle(p.Yaw - cursorDelta.X()*sensitivity)
	p.Pitch = clampPitch(p.Pitch - cursorDelta.Y()*sensitivity)
	return p
}

// TranslateInput flies the pivot with W/S (forward), A/D (right) and Q/E (up) while keys are held.
// Shift multiplies the speed by Boost.
type TranslateInput struct {
	held map[Key]bool
	// units per second
	Speed float32
	// speed multiplier while shift is held
	Boost float32
}

func NewTranslateInput(speed, boost float32) *TranslateInput {
	return &TranslateInput{
		held:  map[Key]bool{},
		Speed: speed,
		Boost: boost,
	}
}

func (in *TranslateInput) HandleEvent(e Event) {
	switch e.Kind {
	case KeyDown:
		if e.Key == KeyUnknown {
			return
		}
		if in.held == nil {
			in.held = map[Key]bool{}
		}
		in.held[e.Key] = true
	case KeyUp:
		delete(in.held, e.Key)
	}
}

func (in *TranslateInput) Active() bool {
	return in.Movement().LenSqr() > 0
}

// Movement is the camera local direction of the held keys.
func (in *TranslateInput) Movement() mgl32.Vec3 {
	var x, y, z float32
	if in.held[KeyW] {
		z -= 1
	}
	if in.held[KeyS] {
		z += 1
	}
	if in.held[KeyA] {
		x -= 1
	}
	if in.held[KeyD] {
		x += 1
	}
	if in.held[KeyE] {
		y += 1
	}
	if in.held[KeyQ] {
		y -= 1
	}
	return mgl32.Vec3{x, y, z}
}

func (in *TranslateInput) Step(target Pose, cursorDelta, scrollDelta mgl32.Vec2, dt float32) Pose {
	move := in.Movement()
	if move.LenSqr() == 0 {
		return target
	}
	speed := in.Speed * dt
	if in.held[KeyShift] {
		speed *= in.Boost
	}
	target.Pivot = target.Pivot.Add(target.rotate(move.Normalize()).Mul(speed))
	return target
}

// PanInput drags the pivot along the camera right and up axes while the button is held.
type PanInput struct {
	gesture buttonGesture
	// units per pixel
	Speed float32
}

func NewPanInput(button Button, speed float32) *PanInput {
	return &PanInput{
		gesture: buttonGesture{button: button},
		Speed:   speed,
	}
}

func (in *PanInput) HandleEvent(e Event) {
	in.gesture.handle(e)
}

func (in *PanInput) Active() bool {
	return in.gesture.state == active
}

func (in *PanInput) Step(target Pose, cursorDelta, scrollDelta mgl32.Vec2, dt float32) Pose {
	if !in.Active() {
		return target
	}
	// window y grows downwards
	move := target.Right().Mul(-cursorDelta.X() * in.Speed).Add(target.Up().Mul(cursorDelta.Y() * in.Speed))
	target.Pivot = target.Pivot.Add(move)
	return target
}

// ScrollInput moves the pivot along the view direction by the scroll wheel.
type ScrollInput struct {
	// units per scroll step
	Speed float32
}

func NewScrollInput(speed float32) *ScrollInput {
	return &ScrollInput{Speed: speed}
}

func (in *ScrollInput) HandleEvent(e Event) {}

func (in *ScrollInput) Active() bool {
	return false
}

func (in *ScrollInput) Step(target Pose, cursorDelta, scrollDelta mgl32.Vec2, dt float32) Pose {
	if scrollDelta.Y() == 0 {
		return target
	}
	target.Pivot = target.Pivot.Add(target.Forward().Mul(scrollDelta.Y() * in.Speed))
	return target
}

// OrbitInput rotates the camera around a focus point Distance units in front of it.
// On press the pivot moves to the focus point and the offset takes up the distance,
// on release the offset is folded back into the pivot. The camera position is unchanged by both.
type OrbitInput struct {
	gesture  buttonGesture
	engaged  bool
	Distance float32
	// radians per pixel
	Sensitivity float32
}

func NewOrbitInput(button Button, mods Modifier, distance, sensitivity float32) *OrbitInput {
	return &OrbitInput{
		gesture:     buttonGesture{button: button, required: mods},
		Distance:    distance,
		Sensitivity: sensitivity,
	}
}

func (in *OrbitInput) HandleEvent(e Event) {
	in.gesture.handle(e)
}

func (in *OrbitInput) Active() bool {
	return in.gesture.state == active || in.engaged
}

func (in *OrbitInput) Step(target Pose, cursorDelta, scrollDelta mgl32.Vec2, dt float32) Pose {
	pressed := in.gesture.state == active
	switch {
	case pressed && !in.engaged:
		position := target.Position()
		target.Pivot = position.Add(target.Forward().Mul(in.Distance))
		target.Offset = mgl32.Vec3{0, 0, in.Distance}
		in.engaged = true
	case !pressed && in.engaged:
		target.Pivot = target.Position()
		target.Offset = mgl32.Vec3{}
		in.engaged = false
		return target
	case !pressed:
		return target
	}
	return turn(target, cursorDelta, in.Sensitivity)
}
