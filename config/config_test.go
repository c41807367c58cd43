package config

import (
	"strings"
	"testing"

	"depth-precision/depth"
	"depth-precision/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	s := c.Settings()
	assert.Equal(t, depth.Normal, s.DepthMode())
	assert.Equal(t, scene.RenderDepth, s.RenderMode())
	assert.Equal(t, scene.LayoutNear, s.Layout())
	assert.InDelta(t, 1.0471976, s.FovY(), 1e-6)
	assert.Equal(t, mgl32.Vec3{0, 0, 4}, c.Pose().Pivot)
	assert.Len(t, c.CameraSystem().Inputs(), 5)
}

func TestEmptyInputKeepsDefaults(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestOverrides(t *testing.T) {
	c, err := Load(strings.NewReader(`
[window]
width = 640
vsync = false

[camera]
fov = 75.0
pivot = [1.0, 2.0, 3.0]
position_half_life = 0.0

[scene]
depth_mode = "reverse"
layout = "Fighting"
`))
	require.NoError(t, err)

	assert.Equal(t, 640, c.Window.Width)
	assert.Equal(t, 768, c.Window.Height, "untouched keys keep their default")
	assert.False(t, c.Window.VSync)
	assert.Equal(t, [3]float32{1, 2, 3}, c.Camera.Pivot)
	assert.Equal(t, float32(0), c.SmoothProps().PositionHalfLife)
	assert.Equal(t, float32(0.025), c.SmoothProps().RotationHalfLife)

	s := c.Settings()
	assert.Equal(t, depth.Reversed, s.DepthMode())
	assert.Equal(t, scene.LayoutFighting, s.Layout())
	assert.Equal(t, float32(0.01), s.Near())
	assert.Equal(t, float32(10000), s.Far())
}

func TestUnknownKeysAreRejected(t *testing.T) {
	_, err := Load(strings.NewReader(`
[window]
widht = 640
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "widht")
}

func TestInvalidValues(t *testing.T) {
	cases := map[string]string{
		"size":      "[window]\nheight = 0\n",
		"fov":       "[camera]\nfov = 180.0\n",
		"negative":  "[camera]\nscroll_speed = -1.0\n",
		"mode name": "[scene]\ndepth_mode = \"inverted\"\n",
		"render":    "[scene]\nrender_mode = \"normals\"\n",
		"layout":    "[scene]\nlayout = \"far\"\n",
		"syntax":    "[scene\n",
	}
	for name, src := range cases {
		_, err := Load(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrInvalid, name)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("does/not/exist.toml")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}
