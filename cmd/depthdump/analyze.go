package main

import (
	"depth-precision/depth"
	"depth-precision/dump"
	"depth-precision/libio"

	"github.com/chewxy/math32"
)

type depthReport struct {
	Stored libio.ChannelStats
	// view distance over covered pixels only
	MinDistance, MaxDistance float32
	// fraction of pixels that differ from the clear depth
	Coverage float32
}

// linearize converts a stored depth image into visualized distances in [0, 1], near black and far white.
func linearize(img *libio.FloatImage, mode depth.Mode, near, far float32) *libio.FloatImage {
	dst := make([]float32, img.Count())
	for i := range dst {
		d := depth.Linearize(mode, img.Pix[i*img.Channels], near, far)
		dst[i] = depth.Visualize(d, near, far)
	}
	return libio.NewFloatImage(dst, 1, img.Width, img.Height)
}

func analyze(img *libio.FloatImage, m dump.Meta) (depthReport, error) {
	mode, err := m.Mode()
	if err != nil {
		return depthReport{}, err
	}
	report := depthReport{
		Stored:      img.Stats(0),
		MinDistance: math32.Inf(1),
		MaxDistance: math32.Inf(-1),
	}

	clearDepth := mode.State().ClearDepth
	covered := 0
	for i := 0; i < img.Count(); i++ {
		d := img.Pix[i*img.Channels]
		if d == clearDepth {
			continue
		}
		covered++
		dist := depth.Linearize(mode, d, m.Near, m.Far)
		report.MinDistance = math32.Min(report.MinDistance, dist)
		report.MaxDistance = math32.Max(report.MaxDistance, dist)
	}
	if covered == 0 {
		report.MinDistance, report.MaxDistance = 0, 0
	}
	if img.Count() > 0 {
		report.Coverage = float32(covered) / float32(img.Count())
	}
	return report, nil
}
