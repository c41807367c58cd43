package scene

import (
	"depth-precision/depth"
	"depth-precision/libutil"

	"github.com/go-gl/mathgl/mgl32"
)

// Slider ranges of the clip planes.
const (
	NearMin float32 = 0.01
	NearMax float32 = 49.9
	FarMin  float32 = 50
	FarMax  float32 = 10000
)

// Settings is the mutable demo state. Only the UI and the startup configuration change it,
// the passes read an immutable Frame.
type Settings struct {
	depthMode  depth.Mode
	renderMode RenderMode
	layout     LayoutMode
	near, far  float32
	fovY       float32
}

// DefaultSettings is normal depth, depth presentation and the near layout with a 60 degree vertical fov.
func DefaultSettings() *Settings {
	s := &Settings{
		depthMode:  depth.Normal,
		renderMode: RenderDepth,
		fovY:       60 * libutil.Deg2Rad,
	}
	s.SetLayout(LayoutNear)
	return s
}

func (s *Settings) DepthMode() depth.Mode { return s.depthMode }
func (s *Settings) RenderMode() RenderMode { return s.renderMode }
func (s *Settings) Layout() LayoutMode { return s.layout }
func (s *Settings) Near() float32 { return s.near }
func (s *Settings) Far() float32 { return s.far }
func (s *Settings) FovY() float32 { return s.fovY }
func (s *Settings) Quads() []Quad { return LayoutOf(s.layout).Quads }
func (s *Settings) DepthState() depth.State { return s.depthMode.State() }

// SetDepthMode panics on unknown modes so that no depth state without a matching convention can exist.
func (s *Settings) SetDepthMode(m depth.Mode) {
	m.State()
	s.depthMode = m
}

func (s *Settings) SetRenderMode(m RenderMode) {
	if m < 0 || int(m) >= len(RenderModeNames) {
		panic("unknown render mode " + m.String())
	}
	s.renderMode = m
}

// SetLayout switches the quad set and resets the clip planes to the ones of the layout.
func (s *Settings) SetLayout(m LayoutMode) {
	l := LayoutOf(m)
	s.layout = m
	s.near = l.Near
	s.far = l.Far
}

// SetNear clamps near to the slider range.
func (s *Settings) SetNear(near float32) {
	s.near = mgl32.Clamp(near, NearMin, NearMax)
}

// SetFar clamps far to the slider range.
func (s *Settings) SetFar(far float32) {
	s.far = mgl32.Clamp(far, FarMin, FarMax)
}

// SetFovY sets the vertical field of view in radians. It is not clamped, an unusable value is rejected when building the projection.
func (s *Settings) SetFovY(fov float32) {
	s.fovY = fov
}

func (s *Settings) Frustum(aspect float32) depth.Frustum {
	return depth.Frustum{FovY: s.fovY, Aspect: aspect, Near: s.near, Far: s.far}
}

// Snapshot freezes the settings for one frame. The clip planes and depth mode are taken from proj,
// which may lag behind the settings when they currently describe a degenerate frustum.
func (s *Settings) Snapshot(view mgl32.Mat4, proj depth.Projection) Frame {
	return Frame{
		RenderMode: s.renderMode,
		Layout:     s.layout,
		Quads:      s.Quads(),
		View:       view,
		Projection: proj,
	}
}

// Frame is everything the scene and presentation passes need to draw one frame.
type Frame struct {
	RenderMode RenderMode
	Layout     LayoutMode
	Quads      []Quad
	View       mgl32.Mat4
	Projection depth.Projection
}

func (f Frame) DepthMode() depth.Mode {
	return f.Projection.Mode
}

func (f Frame) DepthState() depth.State {
	return f.Projection.State
}

func (f Frame) Near() float32 {
	return f.Projection.Frustum.Near
}

func (f Frame) Far() float32 {
	return f.Projection.Frustum.Far
}

func (f Frame) ViewProjection() mgl32.Mat4 {
	return f.Projection.Matrix.Mul4(f.View)
}
