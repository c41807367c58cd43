package libgl

import (
	"encoding/binary"
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type buffer struct {
	glId      uint32
	size      int
	usage     uint32
	immutable bool
}

// UnboundBuffer is either immutable, for static geometry, or streamed, for per frame uploads.
type UnboundBuffer interface {
	LabeledGlObject
	Id() uint32
	Allocate(data any, flags int)
	AllocateEmptyMutable(size int, usage int)
	Grow(size int) bool
	WriteRange(offset int, size int, data any)
	Delete()
}

func NewBuffer() UnboundBuffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	return &buffer{glId: id}
}

func (vbo *buffer) Id() uint32 {
	return vbo.glId
}

func (vbo *buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, vbo.glId, label)
}

// Allocate creates immutable storage initialized with data.
func (vbo *buffer) Allocate(data any, flags int) {
	vbo.mustBeMutable()
	size := fixedSize(data)
	if size == 0 {
		warnZeroAllocation()
		return
	}
	gl.NamedBufferStorage(vbo.glId, size, Pointer(data), uint32(flags))
	vbo.size = size
	vbo.immutable = true
}

func (vbo *buffer) AllocateEmptyMutable(size int, usage int) {
	vbo.mustBeMutable()
	if size == 0 {
		warnZeroAllocation()
		return
	}
	gl.NamedBufferData(vbo.glId, size, nil, uint32(usage))
	vbo.size = size
	vbo.usage = uint32(usage)
}

// Grow reallocates a mutable buffer that is smaller than size. The previous contents are discarded,
// callers rewrite the whole range after growing. It reports whether the storage was reallocated.
func (vbo *buffer) Grow(size int) bool {
	if size <= vbo.size {
		return false
	}
	vbo.mustBeMutable()
	if vbo.usage == 0 {
		vbo.usage = gl.STREAM_DRAW
	}
	newSize := growSize(vbo.size, size)
	gl.NamedBufferData(vbo.glId, newSize, nil, vbo.usage)
	vbo.size = newSize
	return true
}

// growSize doubles the capacity until size fits, so a steadily growing overlay reallocates rarely.
func growSize(current, size int) int {
	next := max(current, 64)
	for next < size {
		next *= 2
	}
	return next
}

func (vbo *buffer) mustBeMutable() {
	if vbo.immutable {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
}

func (vbo *buffer) WriteRange(offset int, size int, data any) {
	if size == 0 {
		return
	}
	gl.NamedBufferSubData(vbo.glId, offset, size, Pointer(data))
}

func (vbo *buffer) Delete() {
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = 0
}

func fixedSize(data any) int {
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	return size
}

func warnZeroAllocation() {
	gl.DebugMessageInsert(gl.DEBUG_SOURCE_APPLICATION, gl.DEBUG_TYPE_ERROR, 1, gl.DEBUG_SEVERITY_MEDIUM, -1, gl.Str("Zero size buffer allocation\x00"))
}

type vertexArray struct {
	glId uint32
}

type UnboundVertexArray interface {
	LabeledGlObject
	Id() uint32
	// Layout describes attribute attributeIndex as size values of dataType at offset within a vertex of buffer binding bufferIndex.
	Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int)
	BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int)
	BindElementBuffer(ebo UnboundBuffer)
	Bind()
	Delete()
}

func NewVertexArray() UnboundVertexArray {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	return &vertexArray{glId: id}
}

func (vao *vertexArray) Id() uint32 {
	return vao.glId
}

func (vao *vertexArray) SetDebugLabel(label string) {
	setObjectLabel(gl.VERTEX_ARRAY, vao.glId, label)
}

func (vao *vertexArray) Bind() {
	State.BindVertexArray(vao.glId)
}

func (vao *vertexArray) Layout(bufferIndex int, attributeIndex int, size int, dataType int, normalized bool, offset int) {
	attrib := uint32(attributeIndex)
	gl.EnableVertexArrayAttrib(vao.glId, attrib)
	gl.VertexArrayAttribFormat(vao.glId, attrib, int32(size), uint32(dataType), normalized, uint32(offset))
	gl.VertexArrayAttribBinding(vao.glId, attrib, uint32(bufferIndex))
}

func (vao *vertexArray) BindBuffer(bufferIndex int, vbo UnboundBuffer, offset int, stride int) {
	gl.VertexArrayVertexBuffer(vao.glId, uint32(bufferIndex), vbo.Id(), offset, int32(stride))
}

func (vao *vertexArray) BindElementBuffer(ebo UnboundBuffer) {
	gl.VertexArrayElementBuffer(vao.glId, ebo.Id())
}

func (vao *vertexArray) Delete() {
	State.ForgetVertexArray(vao.glId)
	gl.DeleteVertexArrays(1, &vao.glId)
	vao.glId = 0
}
