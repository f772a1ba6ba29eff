package libgl

import (
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type framebuffer struct {
	glId  uint32
	state *StateManager
}

type UnboundFramebuffer interface {
	LabeledGlObject
	Id() uint32
	// target must be GL_DRAW_FRAMEBUFFER, GL_READ_FRAMEBUFFER or GL_FRAMEBUFFER
	Bind(target uint32) BoundFramebuffer
	// target must be GL_DRAW_FRAMEBUFFER, GL_READ_FRAMEBUFFER or GL_FRAMEBUFFER
	Check(target uint32) error
	// attachment is a color attachment index or GL_DEPTH_ATTACHMENT, GL_STENCIL_ATTACHMENT, GL_DEPTH_STENCIL_ATTACHMENT
	AttachRenderbuffer(attachment int, renderbuffer UnboundRenderbuffer)
	Delete()
}

type BoundFramebuffer interface {
	UnboundFramebuffer
}

func NewFramebuffer(state *StateManager) UnboundFramebuffer {
	var id uint32
	gl.CreateFramebuffers(1, &id)

	return &framebuffer{
		glId:  id,
		state: state,
	}
}

func (fb *framebuffer) Id() uint32 {
	return fb.glId
}

func (fb *framebuffer) SetDebugLabel(label string) {
	setObjectLabel(gl.FRAMEBUFFER, fb.glId, label)
}

func (fb *framebuffer) Check(target uint32) error {
	return framebufferStatusError(gl.CheckNamedFramebufferStatus(fb.glId, target))
}

func framebufferStatusError(status uint32) error {
	switch status {
	case gl.FRAMEBUFFER_COMPLETE:
		return nil
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return fmt.Errorf("an attachment is framebuffer incomplete (GL_FRAMEBUFFER_INCOMPLETE_ATTACHMENT)")
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return fmt.Errorf("the framebuffer has no attachments (GL_FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT)")
	case gl.FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER:
		return fmt.Errorf("the object type of a draw attachment is none (GL_FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER)")
	case gl.FRAMEBUFFER_INCOMPLETE_READ_BUFFER:
		return fmt.Errorf("the object type of the read attachment is none (GL_FRAMEBUFFER_INCOMPLETE_READ_BUFFER)")
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return fmt.Errorf("the combination of internal formats of the attachments is not supported (GL_FRAMEBUFFER_UNSUPPORTED)")
	case gl.FRAMEBUFFER_INCOMPLETE_MULTISAMPLE:
		return fmt.Errorf("the attachments have different sampling (GL_FRAMEBUFFER_INCOMPLETE_MULTISAMPLE)")
	}
	return fmt.Errorf("unknown framebuffer status: %X", status)
}

func (fb *framebuffer) Bind(target uint32) BoundFramebuffer {
	fb.state.BindFramebuffer(target, fb.glId)
	return BoundFramebuffer(fb)
}

func attachmentPoint(index int) uint32 {
	switch index {
	case gl.DEPTH_ATTACHMENT, gl.STENCIL_ATTACHMENT, gl.DEPTH_STENCIL_ATTACHMENT:
		return uint32(index)
	}
	return uint32(gl.COLOR_ATTACHMENT0 + index)
}

func (fb *framebuffer) AttachRenderbuffer(attachment int, renderbuffer UnboundRenderbuffer) {
	gl.NamedFramebufferRenderbuffer(fb.glId, attachmentPoint(attachment), gl.RENDERBUFFER, renderbuffer.Id())
}

func (fb *framebuffer) Delete() {
	if fb.state.DrawFramebuffer == fb.glId {
		fb.state.BindDrawFramebuffer(0)
	}
	if fb.state.ReadFramebuffer == fb.glId {
		fb.state.BindReadFramebuffer(0)
	}
	gl.DeleteFramebuffers(1, &fb.glId)
	fb.glId = 0
}

type renderbuffer struct {
	glId          uint32
	width, height int
}

type UnboundRenderbuffer interface {
	LabeledGlObject
	Id() uint32
	Allocate(internalFormat uint32, width, height int)
	Size() (width, height int)
	Delete()
}

func NewRenderbuffer() UnboundRenderbuffer {
	var id uint32
	gl.CreateRenderbuffers(1, &id)
	return &renderbuffer{
		glId: id,
	}
}

func (rb *renderbuffer) Id() uint32 {
	return rb.glId
}

func (rb *renderbuffer) SetDebugLabel(label string) {
	setObjectLabel(gl.RENDERBUFFER, rb.glId, label)
}

func (rb *renderbuffer) Allocate(internalFormat uint32, width, height int) {
	gl.NamedRenderbufferStorage(rb.glId, internalFormat, int32(width), int32(height))
	rb.width, rb.height = width, height
}

func (rb *renderbuffer) Size() (int, int) {
	return rb.width, rb.height
}

func (rb *renderbuffer) Delete() {
	gl.DeleteRenderbuffers(1, &rb.glId)
	rb.glId = 0
}

// ReadPixels copies the first color attachment of framebuffer (0 is the window's back buffer)
// into dst as RGBA8 rows, bottom row first.
func ReadPixels(state *StateManager, framebuffer uint32, width, height int, dst []uint8) {
	if len(dst) < width*height*4 {
		panic(fmt.Errorf("pixel buffer of %d bytes is too small for %dx%d", len(dst), width, height))
	}
	if framebuffer == 0 {
		gl.NamedFramebufferReadBuffer(0, gl.BACK)
	} else {
		gl.NamedFramebufferReadBuffer(framebuffer, gl.COLOR_ATTACHMENT0)
	}
	state.BindReadFramebuffer(framebuffer)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, Pointer(dst))
}
