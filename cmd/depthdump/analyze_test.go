package main

import (
	"testing"

	"depth-precision/depth"
	"depth-precision/dump"
	"depth-precision/libio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearizeBackgroundIsWhite(t *testing.T) {
	for _, mode := range []depth.Mode{depth.Normal, depth.Reversed} {
		clearDepth := mode.State().ClearDepth
		img := libio.NewFloatImage([]float32{clearDepth, clearDepth}, 1, 2, 1)
		lin := linearize(img, mode, 0.1, 100)
		assert.InDelta(t, 1, lin.Pix[0], 1e-3, mode.String())
		assert.InDelta(t, 1, lin.Pix[1], 1e-3, mode.String())
	}
}

func TestAnalyzeReversed(t *testing.T) {
	near, far := float32(1), float32(100)
	proj := depth.MustBuild(depth.Frustum{Near: near, Far: far, FovY: 1, Aspect: 1}, depth.Reversed)
	d10 := proj.StoredDepth([3]float32{0, 0, -10})

	// two covered pixels at distance 10 and two background pixels
	img := libio.NewFloatImage([]float32{d10, 0, d10, 0}, 1, 2, 2)
	meta := dump.Meta{DepthMode: depth.Reversed.String(), Near: near, Far: far}

	report, err := analyze(img, meta)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, report.Coverage, 1e-6)
	assert.InDelta(t, 10, report.MinDistance, 1e-3)
	assert.InDelta(t, 10, report.MaxDistance, 1e-3)
	assert.Equal(t, 2, report.Stored.Distinct)
}

func TestAnalyzeEmpty(t *testing.T) {
	img := libio.NewFloatImage([]float32{1, 1, 1}, 1, 3, 1)
	report, err := analyze(img, dump.Meta{DepthMode: depth.Normal.String(), Near: 1, Far: 2})
	require.NoError(t, err)
	assert.Zero(t, report.Coverage)
	assert.Zero(t, report.MinDistance)
	assert.Zero(t, report.MaxDistance)
}

func TestAnalyzeUnknownMode(t *testing.T) {
	_, err := analyze(libio.NewFloatImage([]float32{0}, 1, 1, 1), dump.Meta{DepthMode: "Sideways"})
	assert.ErrorIs(t, err, dump.ErrMeta)
}
