package libgl

import (
	"log"

	"stereo-gl/librender"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Context draws indexed triangle geometry with one program and one vertex array.
// Every uploaded attribute gets its own buffer and binding point.
type Context struct {
	state      *StateManager
	program    UnboundProgram
	vao        UnboundVertexArray
	buffers    []UnboundBuffer
	label      string
	ClearColor mgl32.Vec4
}

var _ librender.Context = (*Context)(nil)

func NewContext(state *StateManager, program UnboundProgram, label string) *Context {
	vao := NewVertexArray(state)
	vao.SetDebugLabel(label)
	return &Context{
		state:      state,
		program:    program,
		vao:        vao,
		label:      label,
		ClearColor: mgl32.Vec4{0, 0, 0, 1},
	}
}

func (ctx *Context) AttribLocation(name string) int32 {
	return ctx.program.GetAttribLocation(name)
}

func (ctx *Context) UniformLocation(name string) int32 {
	return ctx.program.GetUniformLocation(name)
}

func (ctx *Context) UploadAttribute(location int32, components int, data []float32) {
	vbo := NewBuffer()
	vbo.Allocate(data, 0)
	vbo.SetDebugLabel(ctx.label + " attribute buffer")
	binding := len(ctx.buffers)
	ctx.buffers = append(ctx.buffers, vbo)

	ctx.vao.Layout(binding, int(location), components, gl.FLOAT, false, 0)
	ctx.vao.BindBuffer(binding, vbo, 0, components*4)
}

func (ctx *Context) UploadElements(data any, indexType librender.IndexType) {
	ebo := NewBuffer()
	ebo.Allocate(data, 0)
	ebo.SetDebugLabel(ctx.label + " element buffer")
	ctx.buffers = append(ctx.buffers, ebo)
	ctx.vao.BindElementBuffer(ebo)
}

func (ctx *Context) UniformMatrix4(location int32, m mgl32.Mat4) {
	ctx.program.SetUniformAt(location, m)
}

func (ctx *Context) Viewport(x, y, width, height int) {
	ctx.state.Viewport(x, y, width, height)
}

// Clear resets color and depth of the bound draw framebuffer.
func (ctx *Context) Clear() {
	ctx.state.SetEnabled(DepthTest)
	ctx.state.DepthMask(true)
	ctx.state.ClearColor(ctx.ClearColor[0], ctx.ClearColor[1], ctx.ClearColor[2], ctx.ClearColor[3])
	ctx.state.ClearDepth(1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (ctx *Context) DrawElements(count int, indexType librender.IndexType) {
	ctx.state.SetEnabled(DepthTest)
	ctx.state.DepthFunc(DepthFuncLEqual)
	ctx.state.DepthMask(true)
	ctx.program.Bind()
	ctx.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, int32(count), ElementType(indexType), nil)
}

// ElementType maps an index width to the matching gl element type.
func ElementType(indexType librender.IndexType) uint32 {
	switch indexType {
	case librender.IndexUint8:
		return gl.UNSIGNED_BYTE
	case librender.IndexUint16:
		return gl.UNSIGNED_SHORT
	case librender.IndexUint32:
		return gl.UNSIGNED_INT
	}
	log.Panicf("unsupported index type %v", indexType)
	return 0
}

func (ctx *Context) Delete() {
	for _, b := range ctx.buffers {
		b.Delete()
	}
	ctx.buffers = nil
	ctx.vao.Delete()
}
