package render

import (
	"errors"
	"fmt"
	"log"

	"depth-precision/depth"
	"depth-precision/libgl"
	"depth-precision/scene"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Program names one of the presentation pipelines.
type Program int

const (
	ProgramPassthrough Program = iota
	ProgramDepthNormal
	ProgramDepthReversed
	programCount
)

var programNames = [programCount]string{"passthrough", "depth_normal", "depth_reversed"}

func (p Program) String() string {
	if p < 0 || p >= programCount {
		return fmt.Sprintf("Program(%d)", int(p))
	}
	return programNames[p]
}

// SelectProgram picks the presentation pipeline. It panics on unknown modes.
func SelectProgram(r scene.RenderMode, m depth.Mode) Program {
	switch r {
	case scene.RenderColor:
		return ProgramPassthrough
	case scene.RenderDepth:
		switch m {
		case depth.Normal:
			return ProgramDepthNormal
		case depth.Reversed:
			return ProgramDepthReversed
		}
		panic(fmt.Sprintf("unknown depth mode %d", int(m)))
	}
	panic(fmt.Sprintf("unknown render mode %d", int(r)))
}

type Sources struct {
	ObjectVert, ObjectFrag string
	ScreenVert, ScreenFrag string
	DepthFrag              string
}

// Programs holds every pipeline of both passes. They are created once and never recompiled.
type Programs struct {
	Object  libgl.UnboundShaderPipeline
	present [programCount]libgl.UnboundShaderPipeline
	stages  []libgl.ShaderProgram
}

// NewPrograms compiles all pipelines. Sources without a #version are an error,
// a stage that fails to compile is logged and left empty in its pipeline, which the
// passes then skip drawing with.
func NewPrograms(src Sources) (*Programs, error) {
	p := &Programs{}

	objectVert, err := p.compile(src.ObjectVert, gl.VERTEX_SHADER, nil)
	if err != nil {
		return nil, err
	}
	objectFrag, err := p.compile(src.ObjectFrag, gl.FRAGMENT_SHADER, nil)
	if err != nil {
		return nil, err
	}
	screenVert, err := p.compile(src.ScreenVert, gl.VERTEX_SHADER, nil)
	if err != nil {
		return nil, err
	}
	screenFrag, err := p.compile(src.ScreenFrag, gl.FRAGMENT_SHADER, nil)
	if err != nil {
		return nil, err
	}
	depthNormalFrag, err := p.compile(src.DepthFrag, gl.FRAGMENT_SHADER, map[string]string{"REVERSED_Z": "false"})
	if err != nil {
		return nil, err
	}
	depthReversedFrag, err := p.compile(src.DepthFrag, gl.FRAGMENT_SHADER, map[string]string{"REVERSED_Z": "true"})
	if err != nil {
		return nil, err
	}

	p.Object = libgl.NewPipelineOf(objectVert, objectFrag)
	p.Object.SetDebugLabel("object")
	fragments := [programCount]libgl.ShaderProgram{
		ProgramPassthrough:   screenFrag,
		ProgramDepthNormal:   depthNormalFrag,
		ProgramDepthReversed: depthReversedFrag,
	}
	for i, frag := range fragments {
		p.present[i] = libgl.NewPipelineOf(screenVert, frag)
		p.present[i].SetDebugLabel(Program(i).String())
	}
	return p, nil
}

func (p *Programs) compile(source string, stage int, defs map[string]string) (libgl.ShaderProgram, error) {
	sh, err := libgl.NewShader(source, stage)
	if err != nil {
		return nil, fmt.Errorf("parse shader: %w", err)
	}
	p.stages = append(p.stages, sh)
	if err := sh.CompileWith(defs); err != nil {
		var compileErr *libgl.CompileError
		if !errors.As(err, &compileErr) {
			return nil, err
		}
		log.Printf("%v\n", compileErr)
	}
	return sh, nil
}

func (p *Programs) Presentation(prog Program) libgl.UnboundShaderPipeline {
	return p.present[prog]
}

func (p *Programs) Delete() {
	for _, pipeline := range p.present {
		if pipeline != nil {
			pipeline.Delete()
		}
	}
	if p.Object != nil {
		p.Object.Delete()
	}
	for _, sh := range p.stages {
		sh.Delete()
	}
}
