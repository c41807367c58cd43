package libgl

import (
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type texture struct {
	glId uint32
}

type UnboundTexture interface {
	LabeledGlObject
	Id() uint32
	Bind(unit int)
	Allocate(levels int, internalFormat uint32, width, height int)
	Load(level int, width, height int, format uint32, data any)
	// ReadRegion copies a rectangle of level 0 into data, which must be large enough to hold it.
	ReadRegion(x, y, width, height int, format uint32, data any)
	Delete()
}

// NewTexture2D creates a two dimensional texture without storage.
func NewTexture2D() UnboundTexture {
	var id uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &id)
	return &texture{glId: id}
}

func (tex *texture) Id() uint32 {
	return tex.glId
}

func (tex *texture) SetDebugLabel(label string) {
	setObjectLabel(gl.TEXTURE, tex.glId, label)
}

func (tex *texture) Bind(unit int) {
	State.BindTextureUnit(unit, tex.glId)
}

func (tex *texture) Allocate(levels int, internalFormat uint32, width, height int) {
	if levels <= 0 {
		levels = 1
		for max := width | height; max > 1; max >>= 1 {
			levels++
		}
	}
	gl.TextureStorage2D(tex.glId, int32(levels), internalFormat, int32(width), int32(height))
}

func (tex *texture) Load(level int, width, height int, format uint32, data any) {
	gl.TextureSubImage2D(tex.glId, int32(level), 0, 0, int32(width), int32(height), format, glType(data), Pointer(data))
}

func (tex *texture) ReadRegion(x, y, width, height int, format uint32, data any) {
	gl.GetTextureSubImage(tex.glId, 0, int32(x), int32(y), 0, int32(width), int32(height), 1, format, glType(data), int32(fixedSize(data)), Pointer(data))
}

func (tex *texture) Delete() {
	State.ForgetTexture(tex.glId)
	gl.DeleteTextures(1, &tex.glId)
	tex.glId = 0
}

func glType(data any) uint32 {
	switch data.(type) {
	case []byte, *byte:
		return gl.UNSIGNED_BYTE
	case []uint16, *uint16:
		return gl.UNSIGNED_SHORT
	case []uint32, *uint32:
		return gl.UNSIGNED_INT
	case []float32, *float32, []mgl32.Vec4, *mgl32.Vec4:
		return gl.FLOAT
	}
	log.Panicf("invalid pixel type: %T", data)
	return 0
}

type sampler struct {
	glId uint32
}

type UnboundSampler interface {
	LabeledGlObject
	Id() uint32
	Bind(unit int)
	FilterMode(min, mag int32)
	WrapMode(s, t int32)
	Delete()
}

func NewSampler() UnboundSampler {
	var id uint32
	gl.CreateSamplers(1, &id)
	return &sampler{glId: id}
}

func (s *sampler) Id() uint32 {
	return s.glId
}

func (s *sampler) SetDebugLabel(label string) {
	setObjectLabel(gl.SAMPLER, s.glId, label)
}

func (s *sampler) Bind(unit int) {
	State.BindSampler(unit, s.glId)
}

func (s *sampler) FilterMode(min, mag int32) {
	if min != 0 {
		gl.SamplerParameteri(s.glId, gl.TEXTURE_MIN_FILTER, min)
	}
	if mag != 0 {
		gl.SamplerParameteri(s.glId, gl.TEXTURE_MAG_FILTER, mag)
	}
}

func (smp *sampler) WrapMode(s, t int32) {
	if s != 0 {
		gl.SamplerParameteri(smp.glId, gl.TEXTURE_WRAP_S, s)
	}
	if t != 0 {
		gl.SamplerParameteri(smp.glId, gl.TEXTURE_WRAP_T, t)
	}
}

func (s *sampler) Delete() {
	State.ForgetSampler(s.glId)
	gl.DeleteSamplers(1, &s.glId)
	s.glId = 0
}
