package scene

import (
	"bytes"
	"log"
	"math/rand"
	"strings"
	"testing"

	"depth-precision/camera"
	"depth-precision/depth"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aspect = float32(1024) / 768

func TestDefaults(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, depth.Normal, s.DepthMode())
	assert.Equal(t, RenderDepth, s.RenderMode())
	assert.Equal(t, LayoutNear, s.Layout())
	assert.Equal(t, float32(5), s.Near())
	assert.Equal(t, float32(100), s.Far())
	assert.InDelta(t, 1.0471976, s.FovY(), 1e-6)
	assert.Len(t, s.Quads(), 4)
}

func TestLayoutTable(t *testing.T) {
	for i := range LayoutModeNames {
		l := LayoutOf(LayoutMode(i))
		assert.Less(t, l.Near, l.Far)
		assert.NotEmpty(t, l.Quads)
	}
	assert.Panics(t, func() { LayoutOf(LayoutMode(len(LayoutModeNames))) })
}

func TestLayoutOfReturnsCopy(t *testing.T) {
	l := LayoutOf(LayoutNear)
	l.Quads[0].Color = mgl32.Vec4{}
	assert.Equal(t, mgl32.Vec4{1, 0.5, 0.2, 1}, LayoutOf(LayoutNear).Quads[0].Color)
}

func TestQuadModel(t *testing.T) {
	q := Quad{Translate: mgl32.Vec3{10, 0, -500}, Scale: mgl32.Vec3{100, 100, 1}}
	corner := q.Model().Mul4x1(mgl32.Vec4{0.5, -0.5, 0, 1}).Vec3()
	assert.Equal(t, mgl32.Vec3{60, -50, -500}, corner)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Depth", RenderDepth.String())
	assert.Equal(t, "Fighting", LayoutFighting.String())
	assert.Equal(t, "RenderMode(7)", RenderMode(7).String())
}

func TestClipPlanesAreClamped(t *testing.T) {
	s := DefaultSettings()
	s.SetNear(0)
	assert.Equal(t, NearMin, s.Near())
	s.SetNear(60)
	assert.Equal(t, NearMax, s.Near())
	s.SetFar(1)
	assert.Equal(t, FarMin, s.Far())
	s.SetFar(1e9)
	assert.Equal(t, FarMax, s.Far())
}

func TestRandomToggles(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := DefaultSettings()
	projector, err := NewProjector(s.Frustum(aspect))
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		switch rng.Intn(5) {
		case 0:
			s.SetDepthMode(depth.Mode(rng.Intn(len(depth.ModeNames))))
		case 1:
			s.SetRenderMode(RenderMode(rng.Intn(len(RenderModeNames))))
		case 2:
			layout := LayoutMode(rng.Intn(len(LayoutModeNames)))
			s.SetLayout(layout)
			l := LayoutOf(layout)
			assert.Equal(t, l.Near, s.Near())
			assert.Equal(t, l.Far, s.Far())
			assert.Equal(t, l.Quads, s.Quads())
		case 3:
			s.SetNear(NearMin + rng.Float32()*(NearMax-NearMin))
		case 4:
			s.SetFar(FarMin + rng.Float32()*(FarMax-FarMin))
		}

		frame := s.Snapshot(mgl32.Ident4(), projector.Update(s.Frustum(aspect))[s.DepthMode()])
		require.True(t, frame.DepthState().Consistent(), "step %d: %+v", i, frame.DepthState())
		assert.Equal(t, s.DepthMode().State(), frame.DepthState())
		assert.Equal(t, s.DepthMode(), frame.DepthMode())
		assert.Equal(t, s.Near(), frame.Near())
		assert.Equal(t, s.Far(), frame.Far())
		assert.Equal(t, s.Quads(), frame.Quads)
	}
}

func TestProjectorKeepsLastValid(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	s := DefaultSettings()
	projector, err := NewProjector(s.Frustum(aspect))
	require.NoError(t, err)
	valid := projector.Get(depth.Reversed)

	s.SetFovY(0)
	for i := 0; i < 3; i++ {
		assert.Equal(t, valid, projector.Update(s.Frustum(aspect))[depth.Reversed])
	}
	assert.Equal(t, 1, strings.Count(buf.String(), "keeping previous projection"))

	s.SetFovY(-1)
	projector.Update(s.Frustum(aspect))
	assert.Equal(t, 2, strings.Count(buf.String(), "keeping previous projection"))

	s.SetFovY(1)
	next := projector.Update(s.Frustum(aspect))
	assert.NotEqual(t, valid.Matrix, next[depth.Reversed].Matrix)
	assert.Equal(t, next[depth.Normal], projector.Get(depth.Normal))
}

func TestNewProjectorRejectsDegenerate(t *testing.T) {
	_, err := NewProjector(depth.Frustum{FovY: 1, Aspect: 1, Near: 10, Far: 10})
	assert.ErrorIs(t, err, depth.ErrDegenerateFrustum)
}

// visualized depth of every quad center as the depth presentation would show it
func presentedQuadDepths(s *Settings, pose camera.Pose) []float32 {
	proj := depth.MustBuild(s.Frustum(aspect), s.DepthMode())
	frame := s.Snapshot(pose.View(), proj)
	var result []float32
	for _, q := range frame.Quads {
		v := frame.View.Mul4x1(q.Model().Mul4x1(mgl32.Vec4{0, 0, 0, 1})).Vec3()
		d := frame.Projection.StoredDepth(v)
		lin := depth.Linearize(frame.DepthMode(), d, frame.Near(), frame.Far())
		result = append(result, depth.Visualize(lin, frame.Near(), frame.Far()))
	}
	return result
}

func TestNearScenario(t *testing.T) {
	pose := camera.NewPose(mgl32.Vec3{0, 0, 4})
	for _, mode := range []depth.Mode{depth.Normal, depth.Reversed} {
		s := DefaultSettings()
		s.SetDepthMode(mode)
		got := presentedQuadDepths(s, pose)

		assert.InDelta(t, 0, got[0], 1e-3, "%v: the nearest quad touches the near plane", mode)
		assert.InDelta(t, 2.0/95, got[1], 1e-3, "%v", mode)
		assert.InDelta(t, 0.2, got[2], 1e-3, "%v", mode)
		assert.InDelta(t, 79.0/95, got[3], 1e-3, "%v", mode)

		cleared := s.DepthState().ClearDepth
		background := depth.Visualize(depth.Linearize(mode, cleared, s.Near(), s.Far()), s.Near(), s.Far())
		assert.InDelta(t, 1, background, 1e-5, "%v: background", mode)
	}
}

func TestFightingScenario(t *testing.T) {
	s := DefaultSettings()
	s.SetLayout(LayoutFighting)
	pose := camera.NewPose(mgl32.Vec3{})

	s.SetDepthMode(depth.Reversed)
	reversed := presentedQuadDepths(s, pose)
	// quads ordered by distance: red 499.98, blue 500, green 500.01, orange 500.02
	order := []int{1, 2, 3, 0}
	for i := 1; i < len(order); i++ {
		assert.Less(t, reversed[order[i-1]], reversed[order[i]], "reversed keeps %d in front of %d", order[i-1], order[i])
	}
}
