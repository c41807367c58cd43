package camera

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"
)

// System distributes events to its inputs and accumulates pointer motion between steps.
type System struct {
	inputs      []Input
	cursor      mgl32.Vec2
	hasCursor   bool
	cursorDelta mgl32.Vec2
	scrollDelta mgl32.Vec2
}

func NewSystem(inputs ...Input) *System {
	s := &System{}
	for _, in := range inputs {
		s.Register(in)
	}
	return s
}

// Register appends in to the step order. Registering an input twice has no effect.
func (s *System) Register(in Input) {
	if slices.Contains(s.inputs, in) {
		return
	}
	s.inputs = append(s.inputs, in)
}

func (s *System) Unregister(in Input) {
	if i := slices.Index(s.inputs, in); i >= 0 {
		s.inputs = slices.Delete(s.inputs, i, i+1)
	}
}

func (s *System) Inputs() []Input {
	return slices.Clone(s.inputs)
}

// HandleEvent records pointer motion and forwards e to every input. It never touches a pose.
func (s *System) HandleEvent(e Event) {
	switch e.Kind {
	case CursorMove:
		if s.hasCursor {
			s.cursorDelta = s.cursorDelta.Add(e.Cursor.Sub(s.cursor))
		}
		s.cursor = e.Cursor
		s.hasCursor = true
	case Scroll:
		s.scrollDelta = s.scrollDelta.Add(e.Scroll)
	}
	for _, in := range s.inputs {
		in.HandleEvent(e)
	}
}

// Active reports whether any input is in the middle of a gesture.
func (s *System) Active() bool {
	return slices.ContainsFunc(s.inputs, Input.Active)
}

// Step applies the inputs to target in registration order and consumes the accumulated motion.
func (s *System) Step(target Pose, dt float32) Pose {
	cursorDelta, scrollDelta := s.cursorDelta, s.scrollDelta
	s.cursorDelta, s.scrollDelta = mgl32.Vec2{}, mgl32.Vec2{}
	for _, in := range s.inputs {
		target = in.Step(target, cursorDelta, scrollDelta, dt)
	}
	return target
}
