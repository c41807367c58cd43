// Package depth builds perspective projections for the standard and the reversed-Z depth
// conventions and converts stored depth values back into view distances.
package depth

import "fmt"

type Mode int

const (
	Normal Mode = iota
	Reversed
)

// ModeNames are the labels shown to the operator, indexed by Mode.
var ModeNames = []string{"Normal", "Reverse"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(ModeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return ModeNames[m]
}

type ClipRange int

const (
	// clip space depth in [-w, w]
	ClipNegativeOneToOne ClipRange = iota
	// clip space depth in [0, w]
	ClipZeroToOne
)

type Compare int

const (
	CompareLess Compare = iota
	CompareGreater
)

// State is everything the depth test needs to agree with a projection.
// It only exists as a whole, derived from a Mode.
type State struct {
	Clip       ClipRange
	ClearDepth float32
	Compare    Compare
}

func (m Mode) State() State {
	switch m {
	case Normal:
		return State{Clip: ClipNegativeOneToOne, ClearDepth: 1, Compare: CompareLess}
	case Reversed:
		return State{Clip: ClipZeroToOne, ClearDepth: 0, Compare: CompareGreater}
	}
	panic(fmt.Sprintf("unknown depth mode %d", int(m)))
}

// Consistent reports whether the three parts of s describe a single depth convention.
func (s State) Consistent() bool {
	return s == Normal.State() || s == Reversed.State()
}
