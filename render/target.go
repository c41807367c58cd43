// Package render draws a scene.Frame into an off-screen target and presents one of its attachments.
package render

import (
	"fmt"

	"depth-precision/libgl"
	"depth-precision/libio"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Target is the off-screen framebuffer of the scene pass.
type Target struct {
	Framebuffer libgl.UnboundFramebuffer
	Color       libgl.UnboundTexture
	Depth       libgl.UnboundTexture
	Width       int
	Height      int
}

// NewTarget allocates a float color and a float depth attachment of the given size.
// An incomplete framebuffer is returned as an error wrapping libgl.ErrFramebufferIncomplete.
func NewTarget(width, height int) (*Target, error) {
	t := &Target{Width: width, Height: height}

	t.Color = libgl.NewTexture2D()
	t.Color.Allocate(1, gl.RGBA32F, width, height)
	t.Color.SetDebugLabel("scene_color")

	t.Depth = libgl.NewTexture2D()
	t.Depth.Allocate(1, gl.DEPTH32F_STENCIL8, width, height)
	t.Depth.SetDebugLabel("scene_depth")

	t.Framebuffer = libgl.NewFramebuffer()
	t.Framebuffer.SetDebugLabel("scene")
	t.Framebuffer.AttachTexture(0, t.Color)
	t.Framebuffer.AttachTexture(gl.DEPTH_STENCIL_ATTACHMENT, t.Depth)
	t.Framebuffer.BindTargets(0)

	if err := t.Framebuffer.Check(gl.DRAW_FRAMEBUFFER); err != nil {
		t.Delete()
		return nil, fmt.Errorf("scene target %dx%d: %w", width, height, err)
	}
	return t, nil
}

func (t *Target) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.Width && y < t.Height
}

// ReadDepth returns the stored depth at x, y with the origin in the lower left corner.
func (t *Target) ReadDepth(x, y int) float32 {
	var d [1]float32
	t.Depth.ReadRegion(x, y, 1, 1, gl.DEPTH_COMPONENT, d[:])
	return d[0]
}

// ReadColorImage copies the color attachment, rows bottom up.
func (t *Target) ReadColorImage() *libio.FloatImage {
	img := libio.NewFloatImage(make([]float32, 4*t.Width*t.Height), 4, t.Width, t.Height)
	t.Color.ReadRegion(0, 0, t.Width, t.Height, gl.RGBA, img.Pix)
	return img
}

// ReadDepthImage copies the depth attachment, rows bottom up.
func (t *Target) ReadDepthImage() *libio.FloatImage {
	img := libio.NewFloatImage(make([]float32, t.Width*t.Height), 1, t.Width, t.Height)
	t.Depth.ReadRegion(0, 0, t.Width, t.Height, gl.DEPTH_COMPONENT, img.Pix)
	return img
}

func (t *Target) Delete() {
	if t.Framebuffer != nil {
		t.Framebuffer.Delete()
	}
	t.Depth.Delete()
	t.Color.Delete()
}
