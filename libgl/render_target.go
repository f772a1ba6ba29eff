package libgl

import (
	"log"

	"stereo-gl/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// RenderTarget is an offscreen color and depth surface that is reallocated on resize.
// Both eyes are drawn into it side by side before it is copied to the window.
type RenderTarget struct {
	state         *StateManager
	label         string
	fb            UnboundFramebuffer
	color         UnboundRenderbuffer
	depth         UnboundRenderbuffer
	width, height int
}

func NewRenderTarget(state *StateManager, label string) *RenderTarget {
	return &RenderTarget{
		state: state,
		label: label,
	}
}

func (rt *RenderTarget) Size() (int, int) {
	return rt.width, rt.height
}

// Resize reallocates the attachments. The contents are undefined afterwards.
func (rt *RenderTarget) Resize(width, height int) {
	if rt.fb != nil && width == rt.width && height == rt.height {
		return
	}
	rt.Delete()

	rt.color = NewRenderbuffer()
	rt.color.Allocate(gl.RGBA8, width, height)
	rt.color.SetDebugLabel(rt.label + " color")
	rt.depth = NewRenderbuffer()
	rt.depth.Allocate(gl.DEPTH_COMPONENT24, width, height)
	rt.depth.SetDebugLabel(rt.label + " depth")

	rt.fb = NewFramebuffer(rt.state)
	rt.fb.AttachRenderbuffer(0, rt.color)
	rt.fb.AttachRenderbuffer(gl.DEPTH_ATTACHMENT, rt.depth)
	rt.fb.SetDebugLabel(rt.label)
	if err := rt.fb.Check(gl.DRAW_FRAMEBUFFER); err != nil {
		log.Panicf("%v framebuffer %dx%d: %v", rt.label, width, height, err)
	}

	rt.width, rt.height = width, height
	log.Printf("%v resized to %dx%d\n", rt.label, width, height)
}

// Bind makes the target the destination of draw calls.
func (rt *RenderTarget) Bind() {
	if rt.fb == nil {
		log.Panicf("%v is bound before it was sized", rt.label)
	}
	rt.fb.Bind(gl.DRAW_FRAMEBUFFER)
}

func (rt *RenderTarget) Id() uint32 {
	if rt.fb == nil {
		return 0
	}
	return rt.fb.Id()
}

// BlitTo copies the target letterboxed into the draw framebuffer dst of size dstW x dstH.
func (rt *RenderTarget) BlitTo(dst uint32, dstW, dstH int) {
	if rt.fb == nil {
		return
	}
	x, y, w, h := libutil.Fit(rt.width, rt.height, dstW, dstH)
	gl.BlitNamedFramebuffer(rt.fb.Id(), dst,
		0, 0, int32(rt.width), int32(rt.height),
		int32(x), int32(y), int32(x+w), int32(y+h),
		gl.COLOR_BUFFER_BIT, gl.LINEAR)
}

func (rt *RenderTarget) ReadPixels(dst []uint8) {
	ReadPixels(rt.state, rt.Id(), rt.width, rt.height, dst)
}

func (rt *RenderTarget) Delete() {
	if rt.fb != nil {
		rt.fb.Delete()
		rt.color.Delete()
		rt.depth.Delete()
	}
	rt.fb, rt.color, rt.depth = nil, nil, nil
	rt.width, rt.height = 0, 0
}
