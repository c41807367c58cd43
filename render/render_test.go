package render

import (
	"testing"

	"depth-precision/depth"
	"depth-precision/libgl"
	"depth-precision/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSelectProgramTable(t *testing.T) {
	cases := []struct {
		render scene.RenderMode
		mode   depth.Mode
		want   Program
	}{
		{scene.RenderColor, depth.Normal, ProgramPassthrough},
		{scene.RenderColor, depth.Reversed, ProgramPassthrough},
		{scene.RenderDepth, depth.Normal, ProgramDepthNormal},
		{scene.RenderDepth, depth.Reversed, ProgramDepthReversed},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SelectProgram(c.render, c.mode), "%v/%v", c.render, c.mode)
	}
}

func TestSelectProgramCoversEveryCombination(t *testing.T) {
	seen := map[Program]bool{}
	for r := range scene.RenderModeNames {
		for m := range depth.ModeNames {
			p := SelectProgram(scene.RenderMode(r), depth.Mode(m))
			assert.True(t, p >= 0 && p < programCount)
			seen[p] = true
		}
	}
	assert.Len(t, seen, int(programCount))
}

func TestSelectProgramPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { SelectProgram(scene.RenderMode(2), depth.Normal) })
	assert.Panics(t, func() { SelectProgram(scene.RenderDepth, depth.Mode(5)) })
}

func TestGlDepthState(t *testing.T) {
	assert.Equal(t, libgl.DepthState{
		Clip:    libgl.ClipDepthNegativeOneToOne,
		Clear:   1,
		Compare: libgl.DepthFuncLess,
	}, GlDepthState(depth.Normal.State()))
	assert.Equal(t, libgl.DepthState{
		Clip:    libgl.ClipDepthZeroToOne,
		Clear:   0,
		Compare: libgl.DepthFuncGreater,
	}, GlDepthState(depth.Reversed.State()))
}

func TestProbePixel(t *testing.T) {
	x, y, ok := ProbePixel(mgl32.Vec2{0, 0}, 1024, 768, 1024, 768)
	assert.True(t, ok)
	assert.Equal(t, 0, x)
	assert.Equal(t, 767, y, "top row of the window is the last row of the target")

	x, y, ok = ProbePixel(mgl32.Vec2{100.5, 700.2}, 1024, 768, 2048, 1536)
	assert.True(t, ok)
	assert.Equal(t, 201, x)
	assert.Equal(t, 1536-1-1400, y)

	_, _, ok = ProbePixel(mgl32.Vec2{1024, 10}, 1024, 768, 1024, 768)
	assert.False(t, ok)
	_, _, ok = ProbePixel(mgl32.Vec2{10, 768}, 1024, 768, 1024, 768)
	assert.False(t, ok)
	_, _, ok = ProbePixel(mgl32.Vec2{-1, 10}, 1024, 768, 1024, 768)
	assert.False(t, ok)
}
