// Package scene holds the operator controlled settings of the demo and the per frame snapshot the passes draw from.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type RenderMode int

const (
	// present the color attachment
	RenderColor RenderMode = iota
	// present the linearized depth attachment
	RenderDepth
)

var RenderModeNames = []string{"Color", "Depth"}

func (m RenderMode) String() string {
	if m < 0 || int(m) >= len(RenderModeNames) {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return RenderModeNames[m]
}

type LayoutMode int

const (
	LayoutNear LayoutMode = iota
	LayoutFighting
)

var LayoutModeNames = []string{"Near", "Fighting"}

func (m LayoutMode) String() string {
	if m < 0 || int(m) >= len(LayoutModeNames) {
		return fmt.Sprintf("LayoutMode(%d)", int(m))
	}
	return LayoutModeNames[m]
}

// Quad is an instance of the unit square centered at the origin of the xy plane.
type Quad struct {
	Translate mgl32.Vec3
	Scale     mgl32.Vec3
	Color     mgl32.Vec4
}

func (q Quad) Model() mgl32.Mat4 {
	return mgl32.Translate3D(q.Translate[0], q.Translate[1], q.Translate[2]).
		Mul4(mgl32.Scale3D(q.Scale[0], q.Scale[1], q.Scale[2]))
}

// Layout is a set of quads and the clip planes it is meant to be viewed with.
type Layout struct {
	Near, Far float32
	Quads     []Quad
}

var (
	orange = mgl32.Vec4{1, 0.5, 0.2, 1}
	red    = mgl32.Vec4{1, 0, 0, 1}
	blue   = mgl32.Vec4{0.1, 0.2, 0.6, 1}
	green  = mgl32.Vec4{0.1, 0.8, 0.2, 1}
)

var one = mgl32.Vec3{1, 1, 1}

// fighting quads are wide enough to overlap each other around the center of the view
var wide = mgl32.Vec3{100, 100, 1}

var layouts = [...]Layout{
	LayoutNear: {
		Near: 5,
		Far:  100,
		Quads: []Quad{
			{Translate: mgl32.Vec3{-0.25, 0.25, -1}, Scale: one, Color: orange},
			{Translate: mgl32.Vec3{0.25, -0.25, -3}, Scale: one, Color: red},
			{Translate: mgl32.Vec3{-0.25, 5.5, -20}, Scale: one, Color: blue},
			{Translate: mgl32.Vec3{-30, 0, -80}, Scale: one, Color: green},
		},
	},
	LayoutFighting: {
		Near: 0.01,
		Far:  10000,
		Quads: []Quad{
			{Translate: mgl32.Vec3{-10, 25, -500.02}, Scale: wide, Color: orange},
			{Translate: mgl32.Vec3{10, -25, -499.98}, Scale: wide, Color: red},
			{Translate: mgl32.Vec3{-10, 0, -500}, Scale: wide, Color: blue},
			{Translate: mgl32.Vec3{10, 0, -500.01}, Scale: wide, Color: green},
		},
	},
}

// LayoutOf returns a copy of the layout table entry for m. It panics on unknown modes.
func LayoutOf(m LayoutMode) Layout {
	if m < 0 || int(m) >= len(layouts) {
		panic(fmt.Sprintf("unknown layout mode %d", int(m)))
	}
	l := layouts[m]
	l.Quads = append([]Quad(nil), l.Quads...)
	return l
}
