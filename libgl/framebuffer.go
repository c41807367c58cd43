package libgl

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type framebuffer struct {
	glId uint32
}

type UnboundFramebuffer interface {
	LabeledGlObject
	Id() uint32
	// target must be GL_DRAW_FRAMEBUFFER, GL_READ_FRAMEBUFFER or GL_FRAMEBUFFER
	Bind(target uint32)
	// target must be GL_DRAW_FRAMEBUFFER, GL_READ_FRAMEBUFFER or GL_FRAMEBUFFER
	Check(target uint32) error
	// AttachTexture attaches level 0 of texture. index is a color attachment index
	// or one of GL_DEPTH_ATTACHMENT and GL_DEPTH_STENCIL_ATTACHMENT.
	AttachTexture(index int, texture UnboundTexture)
	BindTargets(indices ...int)
	Delete()
}

var ErrFramebufferIncomplete = errors.New("framebuffer incomplete")

var framebufferStatusNames = map[uint32]string{
	gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:         "incomplete attachment",
	gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT: "missing attachment",
	gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:        "incomplete draw buffer",
	gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:        "incomplete read buffer",
	gl.FRAMEBUFFER_UNSUPPORTED:                   "unsupported attachment formats",
	gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:        "mismatched sample counts",
}

func NewFramebuffer() UnboundFramebuffer {
	var id uint32
	gl.CreateFramebuffers(1, &id)
	return &framebuffer{glId: id}
}

func (fb *framebuffer) Id() uint32 {
	return fb.glId
}

func (fb *framebuffer) SetDebugLabel(label string) {
	setObjectLabel(gl.FRAMEBUFFER, fb.glId, label)
}

func (fb *framebuffer) Bind(target uint32) {
	State.BindFramebuffer(target, fb.glId)
}

func (fb *framebuffer) AttachTexture(index int, texture UnboundTexture) {
	attachment := uint32(index)
	if index != gl.DEPTH_ATTACHMENT && index != gl.DEPTH_STENCIL_ATTACHMENT {
		attachment = gl.COLOR_ATTACHMENT0 + uint32(index)
	}
	gl.NamedFramebufferTexture(fb.glId, attachment, texture.Id(), 0)
}

func (fb *framebuffer) BindTargets(indices ...int) {
	attachments := make([]uint32, len(indices))
	for i, v := range indices {
		attachments[i] = gl.COLOR_ATTACHMENT0 + uint32(v)
	}
	if len(attachments) == 0 {
		gl.NamedFramebufferDrawBuffer(fb.glId, gl.NONE)
		return
	}
	gl.NamedFramebufferDrawBuffers(fb.glId, int32(len(attachments)), &attachments[0])
}

func (fb *framebuffer) Check(target uint32) error {
	status := gl.CheckNamedFramebufferStatus(fb.glId, target)
	if status == gl.FRAMEBUFFER_COMPLETE {
		return nil
	}
	reason, ok := framebufferStatusNames[status]
	if !ok {
		reason = fmt.Sprintf("status 0x%X", status)
	}
	return fmt.Errorf("%w: %s", ErrFramebufferIncomplete, reason)
}

func (fb *framebuffer) Delete() {
	State.ForgetFramebuffer(fb.glId)
	gl.DeleteFramebuffers(1, &fb.glId)
	fb.glId = 0
}
