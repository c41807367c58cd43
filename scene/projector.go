package scene

import (
	"log"

	"depth-precision/depth"
)

// Projector builds the projections of both depth modes every frame and
// falls back to the last valid pair when the frustum is degenerate.
type Projector struct {
	last     [2]depth.Projection
	rejected depth.Frustum
	failing  bool
}

func NewProjector(f depth.Frustum) (*Projector, error) {
	both, err := depth.BuildBoth(f)
	if err != nil {
		return nil, err
	}
	return &Projector{last: both}, nil
}

// Update returns the projections for f. A degenerate frustum is logged once
// for as long as it stays the same and the previous projections are returned.
func (p *Projector) Update(f depth.Frustum) [2]depth.Projection {
	both, err := depth.BuildBoth(f)
	if err != nil {
		if !p.failing || p.rejected != f {
			log.Printf("keeping previous projection: %v", err)
		}
		p.failing = true
		p.rejected = f
		return p.last
	}
	p.failing = false
	p.last = both
	return both
}

// Get returns the current projection of mode.
func (p *Projector) Get(mode depth.Mode) depth.Projection {
	mode.State()
	return p.last[mode]
}
