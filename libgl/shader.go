package libgl

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"depth-precision/libgl/glsl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// CompileError carries the driver log of a shader that failed to link or validate.
type CompileError struct {
	Program string
	Stage   string
	Log     string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to %v %v shader, log: %v", e.Stage, e.Program, strings.TrimRight(e.Log, "\x00\n "))
}

type shaderPipeline struct {
	glId      uint32
	vertStage ShaderProgram
	fragStage ShaderProgram
}

type UnboundShaderPipeline interface {
	LabeledGlObject
	Id() uint32
	Bind()
	Attach(program ShaderProgram, stages int)
	Get(stage int) ShaderProgram
	Complete() bool
	Delete()
}

// NewPipelineOf creates a pipeline running vert and frag.
func NewPipelineOf(vert, frag ShaderProgram) UnboundShaderPipeline {
	p := &shaderPipeline{}
	gl.CreateProgramPipelines(1, &p.glId)
	p.Attach(vert, gl.VERTEX_SHADER_BIT)
	p.Attach(frag, gl.FRAGMENT_SHADER_BIT)
	return p
}

func (sp *shaderPipeline) Id() uint32 {
	return sp.glId
}

func (sp *shaderPipeline) SetDebugLabel(label string) {
	setObjectLabel(gl.PROGRAM_PIPELINE, sp.glId, label)
}

func (sp *shaderPipeline) Attach(program ShaderProgram, stages int) {
	gl.UseProgramStages(sp.glId, uint32(stages), program.Id())
	if stages&gl.VERTEX_SHADER_BIT != 0 {
		sp.vertStage = program
	}
	if stages&gl.FRAGMENT_SHADER_BIT != 0 {
		sp.fragStage = program
	}
}

func (sp *shaderPipeline) Get(stage int) ShaderProgram {
	switch stage {
	case gl.VERTEX_SHADER:
		return sp.vertStage
	case gl.FRAGMENT_SHADER:
		return sp.fragStage
	}
	log.Panicf("%d is not a valid shader stage\n", stage)
	return nil
}

// Complete reports whether both stages hold a linked program.
func (sp *shaderPipeline) Complete() bool {
	return sp.vertStage != nil && sp.vertStage.Id() != 0 &&
		sp.fragStage != nil && sp.fragStage.Id() != 0
}

func (sp *shaderPipeline) Bind() {
	State.BindProgramPipeline(sp.glId)
}

// Delete removes the pipeline object. Attached programs are owned separately.
func (sp *shaderPipeline) Delete() {
	State.ForgetProgramPipeline(sp.glId)
	gl.DeleteProgramPipelines(1, &sp.glId)
	sp.glId = 0
}

type program struct {
	uniformLocations map[string]int32
	template         *glsl.Template
	glId             uint32
	stage            int
	warnedUnlinked   bool
}

type ShaderProgram interface {
	Id() uint32
	Name() string
	Compile() error
	CompileWith(defs map[string]string) error
	GetUniformLocation(name string) int32
	SetUniform(name string, value any)
	Delete()
}

// NewShader parses source for the given stage. It does not talk to the driver.
func NewShader(source string, stage int) (ShaderProgram, error) {
	tmpl, err := glsl.Parse(source)
	if err != nil {
		return nil, err
	}
	return &program{template: tmpl, stage: stage, uniformLocations: map[string]int32{}}, nil
}

func (prog *program) Name() string {
	return prog.template.Name
}

func (prog *program) Compile() error {
	return prog.CompileWith(nil)
}

func (prog *program) CompileWith(defs map[string]string) error {
	source := prog.template.Expand(defs)

	cStrs, free := gl.Strs(source + "\x00")
	id := gl.CreateShaderProgramv(uint32(prog.stage), 1, cStrs)
	free()

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		err := &CompileError{Program: prog.Name(), Stage: "link", Log: readProgramInfoLog(id)}
		gl.DeleteProgram(id)
		return err
	}
	gl.ValidateProgram(id)
	gl.GetProgramiv(id, gl.VALIDATE_STATUS, &ok)
	if ok == gl.FALSE {
		err := &CompileError{Program: prog.Name(), Stage: "validate", Log: readProgramInfoLog(id)}
		gl.DeleteProgram(id)
		return err
	}

	if prog.glId != 0 {
		gl.DeleteProgram(prog.glId)
	}
	prog.glId = id
	prog.uniformLocations = map[string]int32{}
	prog.warnedUnlinked = false
	setObjectLabel(gl.PROGRAM, id, prog.Name())
	return nil
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Delete() {
	if prog.glId != 0 {
		gl.DeleteProgram(prog.glId)
	}
	prog.glId = 0
	prog.uniformLocations = map[string]int32{}
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
	return log
}

// GetUniformLocation returns -1 for unknown uniforms and for programs that never linked.
func (prog *program) GetUniformLocation(name string) int32 {
	if prog.glId == 0 {
		if !prog.warnedUnlinked {
			log.Printf("%v shader: not linked, ignoring uniforms\n", prog.Name())
			prog.warnedUnlinked = true
		}
		return -1
	}
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}

	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location

	if location == -1 {
		log.Printf("%v shader: could not get location of %q\n", prog.Name(), name)
	}

	return location
}

func (prog *program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

func setProgramUniformAny(prog uint32, location int32, value any) {
	if refVal := reflect.ValueOf(value); refVal.Kind() == reflect.Ptr {
		value = refVal.Elem().Interface()
	}

	switch v := value.(type) {
	case float32:
		gl.ProgramUniform1f(prog, location, v)
	case int:
		gl.ProgramUniform1i(prog, location, int32(v))
	case int32:
		gl.ProgramUniform1i(prog, location, v)
	case uint32:
		gl.ProgramUniform1ui(prog, location, v)
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.ProgramUniform1i(prog, location, i)
	case mgl32.Vec2:
		gl.ProgramUniform2f(prog, location, v.X(), v.Y())
	case mgl32.Vec3:
		gl.ProgramUniform3f(prog, location, v.X(), v.Y(), v.Z())
	case mgl32.Vec4:
		gl.ProgramUniform4f(prog, location, v.X(), v.Y(), v.Z(), v.W())
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog, location, 1, false, &v[0])
	default:
		log.Panicf("Unsupported uniform type %T", value)
	}
}
