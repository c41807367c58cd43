package render

import (
	"fmt"

	"depth-precision/depth"
	"depth-precision/libgl"
	"depth-precision/libutil"
	"depth-precision/scene"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GlDepthState translates a depth convention into graphics library state.
func GlDepthState(s depth.State) libgl.DepthState {
	var ds libgl.DepthState
	switch s.Clip {
	case depth.ClipNegativeOneToOne:
		ds.Clip = libgl.ClipDepthNegativeOneToOne
	case depth.ClipZeroToOne:
		ds.Clip = libgl.ClipDepthZeroToOne
	default:
		panic(fmt.Sprintf("unknown clip range %d", int(s.Clip)))
	}
	switch s.Compare {
	case depth.CompareLess:
		ds.Compare = libgl.DepthFuncLess
	case depth.CompareGreater:
		ds.Compare = libgl.DepthFuncGreater
	default:
		panic(fmt.Sprintf("unknown depth compare %d", int(s.Compare)))
	}
	ds.Clear = s.ClearDepth
	return ds
}

var SceneClearColor = mgl32.Vec4{0.2, 0.3, 0.3, 1}

// ScenePass draws the quads of a frame into the target.
type ScenePass struct {
	target   *Target
	pipeline libgl.UnboundShaderPipeline
	vao      libgl.UnboundVertexArray
	vbo      libgl.UnboundBuffer
	ebo      libgl.UnboundBuffer
}

func NewScenePass(target *Target, programs *Programs) *ScenePass {
	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel("unit_quad_vertices")
	vbo.Allocate(libutil.UnitQuadPositions, 0)
	ebo := libgl.NewBuffer()
	ebo.SetDebugLabel("unit_quad_indices")
	ebo.Allocate(libutil.UnitQuadIndices, 0)

	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("unit_quad")
	vao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	vao.BindBuffer(0, vbo, 0, 3*4)
	vao.BindElementBuffer(ebo)

	return &ScenePass{
		target:   target,
		pipeline: programs.Object,
		vao:      vao,
		vbo:      vbo,
		ebo:      ebo,
	}
}

func (p *ScenePass) Render(frame scene.Frame) {
	libgl.PushDebugGroup("Scene Pass")
	defer libgl.PopDebugGroup()

	p.target.Framebuffer.Bind(gl.DRAW_FRAMEBUFFER)
	libgl.State.Viewport(0, 0, p.target.Width, p.target.Height)
	libgl.State.ApplyDepthState(GlDepthState(frame.DepthState()))
	libgl.State.SetEnabled(libgl.DepthTest)
	libgl.State.DepthMask(true)
	libgl.State.ClearColor(SceneClearColor[0], SceneClearColor[1], SceneClearColor[2], SceneClearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if !p.pipeline.Complete() {
		return
	}
	p.pipeline.Bind()
	p.vao.Bind()
	vert := p.pipeline.Get(gl.VERTEX_SHADER)
	frag := p.pipeline.Get(gl.FRAGMENT_SHADER)
	viewProjection := frame.ViewProjection()
	for _, q := range frame.Quads {
		vert.SetUniform("u_mvp", viewProjection.Mul4(q.Model()))
		frag.SetUniform("u_color", q.Color)
		gl.DrawElements(gl.TRIANGLES, int32(len(libutil.UnitQuadIndices)), gl.UNSIGNED_INT, nil)
	}
}

func (p *ScenePass) Delete() {
	p.vao.Delete()
	p.ebo.Delete()
	p.vbo.Delete()
}

// PresentPass draws one attachment of the target over the whole window.
type PresentPass struct {
	target        *Target
	programs      *Programs
	sampler       libgl.UnboundSampler
	vao           libgl.UnboundVertexArray
	vbo           libgl.UnboundBuffer
	width, height int
}

// NewPresentPass creates the pass for a default framebuffer of the given size.
func NewPresentPass(target *Target, programs *Programs, width, height int) *PresentPass {
	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel("screen_quad")
	vbo.Allocate(libutil.ScreenQuadVertices, 0)

	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("screen_quad")
	vao.Layout(0, 0, 3, gl.FLOAT, false, 0)
	vao.Layout(0, 1, 2, gl.FLOAT, false, 3*4)
	vao.BindBuffer(0, vbo, 0, libutil.ScreenQuadStride*4)

	sampler := libgl.NewSampler()
	sampler.SetDebugLabel("present")
	sampler.FilterMode(gl.NEAREST, gl.NEAREST)
	sampler.WrapMode(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE)

	return &PresentPass{
		target:   target,
		programs: programs,
		sampler:  sampler,
		vao:      vao,
		vbo:      vbo,
		width:    width,
		height:   height,
	}
}

func (p *PresentPass) Render(frame scene.Frame) {
	libgl.PushDebugGroup("Present Pass")
	defer libgl.PopDebugGroup()

	libgl.State.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	libgl.State.Viewport(0, 0, p.width, p.height)
	libgl.State.SetEnabled()
	libgl.State.ClearColor(1, 1, 1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	prog := SelectProgram(frame.RenderMode, frame.DepthMode())
	pipeline := p.programs.Presentation(prog)
	if !pipeline.Complete() {
		return
	}
	pipeline.Bind()
	p.sampler.Bind(0)
	if prog == ProgramPassthrough {
		p.target.Color.Bind(0)
	} else {
		p.target.Depth.Bind(0)
		frag := pipeline.Get(gl.FRAGMENT_SHADER)
		frag.SetUniform("u_near", frame.Near())
		frag.SetUniform("u_far", frame.Far())
	}

	p.vao.Bind()
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(libutil.ScreenQuadVertices)/libutil.ScreenQuadStride))
}

func (p *PresentPass) Delete() {
	p.vao.Delete()
	p.vbo.Delete()
	p.sampler.Delete()
}
