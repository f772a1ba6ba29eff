package libui

import (
	"unsafe"

	"stereo-gl/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// ImGui renders Dear ImGui draw lists into the window's default framebuffer.
type ImGui struct {
	IO        imgui.IO
	FrameTime float32
	state     *libgl.StateManager
	win       *glfw.Window
	vao       libgl.UnboundVertexArray
	vbo       libgl.UnboundBuffer
	ebo       libgl.UnboundBuffer
	atlas     uint32
	shader    libgl.UnboundProgram
	// OnScroll, if set, also receives wheel motion.
	OnScroll func(x, y float64)
}

func NewImGui(win *glfw.Window, state *libgl.StateManager, shader libgl.UnboundProgram) *ImGui {
	imgui.CreateContext(nil)

	io := imgui.CurrentIO()
	io.SetIniFilename("")
	dispWidth, dispHeight := win.GetSize()
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	imgui.StyleColorsDark()

	vao := libgl.NewVertexArray(state)
	vao.SetDebugLabel("imgui")

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()
	vao.Layout(0, 0, 2, gl.FLOAT, false, vertexOffsetPos)
	vao.Layout(0, 1, 2, gl.FLOAT, false, vertexOffsetUv)
	vao.Layout(0, 2, 4, gl.UNSIGNED_BYTE, true, vertexOffsetCol)

	vbo := libgl.NewBuffer()
	vbo.AllocateEmpty(1024*8, gl.DYNAMIC_STORAGE_BIT)
	vao.BindBuffer(0, vbo, 0, vertexSize)

	ebo := libgl.NewBuffer()
	ebo.AllocateEmpty(1024*8, gl.DYNAMIC_STORAGE_BIT)
	vao.BindElementBuffer(ebo)

	image := io.Fonts().TextureDataRGBA32()
	var atlas uint32
	gl.CreateTextures(gl.TEXTURE_2D, 1, &atlas)
	gl.TextureParameteri(atlas, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TextureParameteri(atlas, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TextureStorage2D(atlas, 1, gl.RGBA8, int32(image.Width), int32(image.Height))
	gl.TextureSubImage2D(atlas, 0, 0, 0, int32(image.Width), int32(image.Height), gl.RGBA, gl.UNSIGNED_BYTE, image.Pixels)
	io.Fonts().SetTextureID(imgui.TextureID(atlas))

	gui := &ImGui{
		IO:        io,
		FrameTime: float32(glfw.GetTime()),
		state:     state,
		win:       win,
		vao:       vao,
		vbo:       vbo,
		ebo:       ebo,
		atlas:     atlas,
		shader:    shader,
	}

	win.SetCursorPosCallback(func(w *glfw.Window, mx, my float64) {
		io.SetMousePosition(imgui.Vec2{X: float32(mx), Y: float32(my)})
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		io.SetMouseButtonDown(int(button), action == glfw.Press)
	})
	win.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		io.AddMouseWheelDelta(float32(x), float32(y))
		if gui.OnScroll != nil {
			gui.OnScroll(x, y)
		}
	})
	win.SetCharCallback(func(w *glfw.Window, char rune) {
		io.AddInputCharacters(string(char))
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			io.KeyPress(int(key))
		}
		if action == glfw.Release {
			io.KeyRelease(int(key))
		}

		// Modifiers are not reliable across systems
		io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
		io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
		io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
		io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
	})

	for imKey, glfwKey := range keyMap {
		io.KeyMap(imKey, int(glfwKey))
	}

	return gui
}

var keyMap = map[int]glfw.Key{
	imgui.KeyTab:        glfw.KeyTab,
	imgui.KeyLeftArrow:  glfw.KeyLeft,
	imgui.KeyRightArrow: glfw.KeyRight,
	imgui.KeyUpArrow:    glfw.KeyUp,
	imgui.KeyDownArrow:  glfw.KeyDown,
	imgui.KeyHome:       glfw.KeyHome,
	imgui.KeyEnd:        glfw.KeyEnd,
	imgui.KeyDelete:     glfw.KeyDelete,
	imgui.KeyBackspace:  glfw.KeyBackspace,
	imgui.KeySpace:      glfw.KeySpace,
	imgui.KeyEnter:      glfw.KeyEnter,
	imgui.KeyEscape:     glfw.KeyEscape,
}

// WantsMouse reports whether the last frame's widgets consume mouse input.
func (gui *ImGui) WantsMouse() bool {
	return gui.IO.WantCaptureMouse()
}

// Draw renders the current frame. The caller binds the window framebuffer.
func (gui *ImGui) Draw() {
	libgl.PushDebugGroup("Draw ImGui")
	defer libgl.PopDebugGroup()

	dispWidth, dispHeight := gui.win.GetSize()
	fbWidth, fbHeight := gui.win.GetFramebufferSize()
	gui.state.Viewport(0, 0, fbWidth, fbHeight)
	gui.IO.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	ortho := mgl32.Ortho2D(0, float32(dispWidth), float32(dispHeight), 0)

	time := float32(glfw.GetTime())
	if delta := time - gui.FrameTime; delta > 0 {
		gui.IO.SetDeltaTime(delta)
	}
	gui.FrameTime = time

	imgui.Render()
	if dispWidth == 0 || dispHeight == 0 {
		return
	}

	gui.vao.Bind()
	gui.shader.Bind()
	gui.shader.SetUniform("u_proj_mat", ortho)
	gui.shader.SetUniform("u_texture", 0)

	gui.state.SetEnabled(libgl.Blend, libgl.ScissorTest)
	gui.state.BlendEquation(libgl.BlendFuncAdd)
	gui.state.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
	gui.state.BindSampler(0, 0)

	drawData := imgui.RenderedDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(dispWidth),
		Y: float32(fbHeight) / float32(dispHeight),
	})

	indexSize := imgui.IndexBufferLayout()
	indexType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		indexType = gl.UNSIGNED_INT
	}
	vertexSize, _, _, _ := imgui.VertexBufferLayout()

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		if gui.vbo.Grow(vertexBufferSize) {
			gui.vao.BindBuffer(0, gui.vbo, 0, vertexSize)
		}
		if vertexBufferSize > 0 {
			gui.vbo.Write(0, unsafe.Slice((*byte)(vertexBuffer), vertexBufferSize))
		}

		indexBuffer, indexBufferSize := list.IndexBuffer()
		if gui.ebo.Grow(indexBufferSize) {
			gui.vao.BindElementBuffer(gui.ebo)
		}
		if indexBufferSize > 0 {
			gui.ebo.Write(0, unsafe.Slice((*byte)(indexBuffer), indexBufferSize))
		}

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			gui.state.BindTextureUnit(0, uint32(cmd.TextureID()))
			clipRect := cmd.ClipRect()
			x, y := int(clipRect.X), fbHeight-int(clipRect.W)
			if y <= 0 {
				y = 0
			}
			gui.state.Scissor(x, y, int(clipRect.Z-clipRect.X), int(clipRect.W-clipRect.Y))
			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
		}
	}
}

func (gui *ImGui) Delete() {
	gl.DeleteTextures(1, &gui.atlas)
	gui.vbo.Delete()
	gui.ebo.Delete()
	gui.vao.Delete()
	imgui.CurrentContext().Destroy()
}
