package libgl

import (
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type GlCapability uint32

const (
	DepthTest   GlCapability = gl.DEPTH_TEST
	Blend       GlCapability = gl.BLEND
	ScissorTest GlCapability = gl.SCISSOR_TEST
)

type GlBlendFactor uint32

const (
	BlendSrcAlpha         GlBlendFactor = gl.SRC_ALPHA
	BlendOneMinusSrcAlpha GlBlendFactor = gl.ONE_MINUS_SRC_ALPHA
)

type GlBlendEquation uint32

const (
	BlendFuncAdd GlBlendEquation = gl.FUNC_ADD
)

type GlDepthFunc uint32

const (
	DepthFuncLess    GlDepthFunc = gl.LESS
	DepthFuncGreater GlDepthFunc = gl.GREATER
)

type GlClipDepth uint32

const (
	ClipDepthNegativeOneToOne GlClipDepth = gl.NEGATIVE_ONE_TO_ONE
	ClipDepthZeroToOne        GlClipDepth = gl.ZERO_TO_ONE
)

// DepthState is the triple that decides how depth is produced, cleared and compared.
// The three values only make sense together and are only ever applied together.
type DepthState struct {
	Clip    GlClipDepth
	Clear   float32
	Compare GlDepthFunc
}

var GlEnv *GlEnvironment

type GlEnvironment struct {
	Vendor       string
	Renderer     string
	Version      string
	Major, Minor int32
}

func GetGlEnv() *GlEnvironment {
	env := &GlEnvironment{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
	gl.GetIntegerv(gl.MAJOR_VERSION, &env.Major)
	gl.GetIntegerv(gl.MINOR_VERSION, &env.Minor)
	return env
}

// Require fails if the context is older than major.minor.
// Clip control, which reversed depth depends on, is core since 4.5.
func (env *GlEnvironment) Require(major, minor int32) error {
	if env.Major > major || (env.Major == major && env.Minor >= minor) {
		return nil
	}
	return fmt.Errorf("OpenGL %d.%d required, %q provides %d.%d", major, minor, env.Renderer, env.Major, env.Minor)
}

// GlStateManager skips state changes that would not change anything.
// All state changes of the program must go through State, otherwise the cache goes stale.
type GlStateManager struct {
	caps             map[GlCapability]bool
	textureUnits     [16]uint32
	samplerUnits     [16]uint32
	drawFramebuffer  uint32
	readFramebuffer  uint32
	programPipeline  uint32
	vertexArray      uint32
	viewport         [4]int
	scissor          [4]int
	blendFunc        [2]GlBlendFactor
	blendEquation    GlBlendEquation
	depthMask        bool
	clearColor       [4]float32
	depth            DepthState
	depthInitialized bool
}

var State *GlStateManager

func NewGlStateManager() *GlStateManager {
	return &GlStateManager{
		caps:      map[GlCapability]bool{},
		depthMask: true,
	}
}

func (s *GlStateManager) enable(c GlCapability) {
	if s.caps[c] {
		return
	}
	gl.Enable(uint32(c))
	s.caps[c] = true
}

func (s *GlStateManager) disable(c GlCapability) {
	if enabled, known := s.caps[c]; known && !enabled {
		return
	}
	gl.Disable(uint32(c))
	s.caps[c] = false
}

// SetEnabled enables exactly the given capabilities and disables every other one.
// Each pass states the full set it needs, so no pass inherits capabilities from the previous one.
func (s *GlStateManager) SetEnabled(caps ...GlCapability) {
	want := map[GlCapability]bool{}
	for _, c := range caps {
		want[c] = true
	}
	for _, c := range []GlCapability{DepthTest, Blend, ScissorTest} {
		if want[c] {
			s.enable(c)
		} else {
			s.disable(c)
		}
	}
}

func (s *GlStateManager) BlendFunc(src, dst GlBlendFactor) {
	if s.blendFunc == [2]GlBlendFactor{src, dst} {
		return
	}
	gl.BlendFunc(uint32(src), uint32(dst))
	s.blendFunc = [2]GlBlendFactor{src, dst}
}

func (s *GlStateManager) BlendEquation(mode GlBlendEquation) {
	if s.blendEquation == mode {
		return
	}
	gl.BlendEquation(uint32(mode))
	s.blendEquation = mode
}

func (s *GlStateManager) DepthMask(flag bool) {
	if s.depthMask == flag {
		return
	}
	gl.DepthMask(flag)
	s.depthMask = flag
}

// ApplyDepthState sets clip control, clear depth and depth function in one step.
// It is the only place in the program that changes any of the three.
func (s *GlStateManager) ApplyDepthState(ds DepthState) {
	if s.depthInitialized && s.depth == ds {
		return
	}
	gl.ClipControl(gl.LOWER_LEFT, uint32(ds.Clip))
	gl.ClearDepthf(ds.Clear)
	gl.DepthFunc(uint32(ds.Compare))
	s.depth = ds
	s.depthInitialized = true
}

func (s *GlStateManager) BindTextureUnit(unit int, texture uint32) {
	if s.textureUnits[unit] == texture {
		return
	}
	gl.BindTextureUnit(uint32(unit), texture)
	s.textureUnits[unit] = texture
}

func (s *GlStateManager) BindSampler(unit int, sampler uint32) {
	if s.samplerUnits[unit] == sampler {
		return
	}
	gl.BindSampler(uint32(unit), sampler)
	s.samplerUnits[unit] = sampler
}

func (s *GlStateManager) BindFramebuffer(target, framebuffer uint32) {
	draw := target == gl.DRAW_FRAMEBUFFER || target == gl.FRAMEBUFFER
	read := target == gl.READ_FRAMEBUFFER || target == gl.FRAMEBUFFER
	if (!draw || s.drawFramebuffer == framebuffer) && (!read || s.readFramebuffer == framebuffer) {
		return
	}
	gl.BindFramebuffer(target, framebuffer)
	if draw {
		s.drawFramebuffer = framebuffer
	}
	if read {
		s.readFramebuffer = framebuffer
	}
}

func (s *GlStateManager) BindProgramPipeline(pipeline uint32) {
	if s.programPipeline == pipeline {
		return
	}
	gl.BindProgramPipeline(pipeline)
	s.programPipeline = pipeline
}

func (s *GlStateManager) BindVertexArray(array uint32) {
	if s.vertexArray == array {
		return
	}
	gl.BindVertexArray(array)
	s.vertexArray = array
}

func (s *GlStateManager) Viewport(x, y, w, h int) {
	if s.viewport == [4]int{x, y, w, h} {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	s.viewport = [4]int{x, y, w, h}
}

func (s *GlStateManager) Scissor(x, y, w, h int) {
	if s.scissor == [4]int{x, y, w, h} {
		return
	}
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
	s.scissor = [4]int{x, y, w, h}
}

func (s *GlStateManager) ClearColor(r, g, b, a float32) {
	if s.clearColor == [4]float32{r, g, b, a} {
		return
	}
	gl.ClearColor(r, g, b, a)
	s.clearColor = [4]float32{r, g, b, a}
}

// The Forget methods drop cached bindings of a deleted object so a recycled name is bound again.
// Names are only unique within one object type, so each type has its own method.

func (s *GlStateManager) ForgetTexture(id uint32) {
	forgetUnits(s.textureUnits[:], id)
}

func (s *GlStateManager) ForgetSampler(id uint32) {
	forgetUnits(s.samplerUnits[:], id)
}

func (s *GlStateManager) ForgetFramebuffer(id uint32) {
	if s.drawFramebuffer == id {
		s.drawFramebuffer = 0
	}
	if s.readFramebuffer == id {
		s.readFramebuffer = 0
	}
}

func (s *GlStateManager) ForgetProgramPipeline(id uint32) {
	if s.programPipeline == id {
		s.programPipeline = 0
	}
}

func (s *GlStateManager) ForgetVertexArray(id uint32) {
	if s.vertexArray == id {
		s.vertexArray = 0
	}
}

func forgetUnits(units []uint32, id uint32) {
	for i := range units {
		if units[i] == id {
			units[i] = 0
		}
	}
}
