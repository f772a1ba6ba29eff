package main

import (
	"errors"
	"fmt"
	"log"

	"stereo-gl/libcfg"
	"stereo-gl/libgl"
	"stereo-gl/libio"
	"stereo-gl/librender"
	"stereo-gl/libscn"
	"stereo-gl/libui"
	"stereo-gl/libvr"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// App owns the window, the graphics objects and the stereo session.
// Everything runs on the thread that created the window.
type App struct {
	cfg      *libcfg.Config
	win      *glfw.Window
	state    *libgl.StateManager
	env      *libgl.Environment
	shader   libgl.UnboundProgram
	ctx      *libgl.Context
	mesh     *librender.Mesh
	surface  *libgl.RenderTarget
	gui      *libui.ImGui
	guiProg  libgl.UnboundProgram
	input    *input
	camera   *Camera
	capturer *Capturer

	display  libvr.Display
	refresh  libvr.RefreshSource
	emulator *libvr.Emulator
	session  *libvr.Session

	toggleKey, captureKey glfw.Key
	// requests recorded by input and the panel, applied between refresh ticks
	intent      libui.PanelActions
	lastCapture string
}

func NewApp(win *glfw.Window, cfg *libcfg.Config, geometry *libscn.Geometry, indexType librender.IndexType) (*App, error) {
	var err error
	app := &App{
		cfg:   cfg,
		win:   win,
		state: libgl.NewStateManager(),
		env:   libgl.GetEnvironment(),
	}
	log.Printf("Using %v, OpenGL %v\n", app.env.Renderer, app.env.Version)

	if app.toggleKey, err = ParseKey(cfg.Controls.ToggleKey); err != nil {
		return nil, fmt.Errorf("controls.toggle_key: %w", err)
	}
	if app.captureKey, err = ParseKey(cfg.Controls.CaptureKey); err != nil {
		return nil, fmt.Errorf("controls.capture_key: %w", err)
	}
	if app.capturer, err = NewCapturer(cfg.Capture.Dir, cfg.Capture.Compression); err != nil {
		return nil, err
	}

	if app.shader, err = libgl.NewProgram(app.state, "cube", Res_CubeVshSrc, Res_CubeFshSrc); err != nil {
		return nil, err
	}
	app.ctx = libgl.NewContext(app.state, app.shader, geometry.Name)
	app.ctx.ClearColor = cfg.Render.ClearColor
	if app.mesh, err = librender.NewMesh(app.ctx, geometry, indexType); err != nil {
		return nil, fmt.Errorf("upload %v: %w", geometry.Name, err)
	}
	log.Printf("Uploaded %v: %d triangles, %d %v indices\n", geometry.Name, geometry.TriangleCount(), app.mesh.IndexCount(), indexType)

	app.display, err = libvr.FirstDisplay(app.providers()...)
	if err != nil {
		return nil, err
	}
	if src, ok := app.display.(libvr.RefreshSource); ok {
		app.refresh = src
	}
	app.emulator, _ = app.display.(*libvr.Emulator)
	log.Printf("Found stereo display %v\n", app.display.DisplayName())

	app.surface = libgl.NewRenderTarget(app.state, "stereo surface")
	app.session = libvr.NewSession(app.display, app.surface, app.mesh)
	app.session.OnStateChange = func(from, to libvr.State) {
		log.Printf("Session %v -> %v\n", from, to)
	}

	if app.guiProg, err = libgl.NewProgram(app.state, "imgui", Res_ImguiVshSrc, Res_ImguiFshSrc); err != nil {
		return nil, err
	}
	app.gui = libui.NewImGui(win, app.state, app.guiProg)
	app.input = NewInputManager(win)
	app.gui.OnScroll = func(x, y float64) {
		app.input.AddScroll(y)
	}

	fbWidth, fbHeight := win.GetFramebufferSize()
	app.camera = &Camera{
		Distance:          3,
		Orientation:       mgl32.Vec2{-20, 30},
		VerticalFov:       cfg.Render.FlatFov,
		ViewportDimension: mgl32.Vec2{float32(fbWidth), float32(fbHeight)},
		ClippingPlanes:    mgl32.Vec2{0.1, 100},
	}
	app.camera.UpdateProjectionMatrix()
	app.camera.UpdateViewMatrix()

	return app, nil
}

func (app *App) providers() []libvr.Provider {
	hmd := app.cfg.Hmd
	return []libvr.Provider{
		&libvr.EmulatorProvider{
			Config: libvr.EmulatorConfig{
				Name:         hmd.Name,
				RenderWidth:  hmd.RenderWidth,
				RenderHeight: hmd.RenderHeight,
				Ipd:          hmd.Ipd,
				FieldOfView:  hmd.Fov,
				Near:         hmd.Near,
				Far:          hmd.Far,
				RefreshRate:  hmd.RefreshRate,
				PresentDelay: hmd.PresentDelay,
				HeadPosition: hmd.HeadPosition,
				Sway:         hmd.Sway,
			},
			Presenter: libvr.PresenterFunc(app.presentStereo),
			Disabled:  !hmd.Emulate,
		},
	}
}

func (app *App) Run() {
	for !app.win.ShouldClose() {
		app.waitEvents()
		app.input.Update(app.win)
		app.handleInput()
		app.applyIntent()
		app.session.Update()

		if app.refresh != nil {
			app.refresh.Pump(glfw.GetTime())
		}
		// device loss inside the pump already returned the session to flat
		if app.session.State() != libvr.StateStereo {
			app.drawFlat()
		}
	}
	if err := app.session.Close(); err != nil {
		log.Printf("Could not end presentation: %v\n", err)
	}
}

// waitEvents sleeps until input arrives or the display is due to refresh.
// The flat view is paced by the buffer swap instead.
func (app *App) waitEvents() {
	if app.session.State() == libvr.StateStereo && app.refresh != nil {
		if wait := app.refresh.UntilRefresh(glfw.GetTime()); wait > 0 {
			glfw.WaitEventsTimeout(wait)
			return
		}
	}
	glfw.PollEvents()
}

func (app *App) handleInput() {
	if app.input.IsKeyTap(app.toggleKey) && !app.gui.IO.WantTextInput() {
		app.intent.Toggle = true
	}
	if app.input.IsKeyTap(app.captureKey) {
		app.intent.Capture = true
	}
	if app.gui.WantsMouse() {
		return
	}

	speed := app.cfg.Controls.LookSpeed
	if app.input.IsMouseDown(glfw.MouseButtonLeft) || app.input.IsMouseDown(glfw.MouseButtonRight) {
		delta := app.input.CursorDelta()
		if app.session.State() == libvr.StateStereo && app.emulator != nil {
			app.emulator.Look(-delta[1]*speed, -delta[0]*speed)
		} else {
			app.camera.Orbit(-delta[1]*speed, -delta[0]*speed)
		}
	}
	if scroll := app.input.ScrollDelta(); scroll != 0 {
		app.camera.Zoom(scroll * 0.25)
	}
}

func (app *App) applyIntent() {
	intent := app.intent
	app.intent = libui.PanelActions{Capture: intent.Capture}

	if intent.Toggle {
		if err := app.session.Toggle(); err != nil {
			if errors.Is(err, libvr.ErrPresentPending) {
				log.Printf("Toggle ignored: %v\n", err)
			} else {
				log.Printf("Toggle failed: %v\n", err)
			}
		}
	}
	if app.emulator != nil {
		if intent.Disconnect {
			log.Printf("Disconnecting %v\n", app.emulator.DisplayName())
			app.emulator.Disconnect()
		}
		if intent.Reconnect {
			app.emulator.Connect()
		}
	}
}

func (app *App) drawFlat() {
	libgl.PushDebugGroup("Flat view")
	fbWidth, fbHeight := app.win.GetFramebufferSize()
	app.state.BindDrawFramebuffer(0)
	if fbWidth > 0 && fbHeight > 0 {
		app.camera.ViewportDimension = mgl32.Vec2{float32(fbWidth), float32(fbHeight)}
		app.camera.UpdateProjectionMatrix()
		app.camera.UpdateViewMatrix()

		app.mesh.Viewport(0, 0, fbWidth, fbHeight)
		app.mesh.Clear()
		app.mesh.SetMatrices(app.camera.ViewMatrix, app.camera.ProjectionMatrix)
		app.mesh.Draw()
	}
	libgl.PopDebugGroup()

	app.present(false)
}

// presentStereo is called from SubmitFrame with the composed surface.
func (app *App) presentStereo() error {
	libgl.PushDebugGroup("Present stereo surface")
	fbWidth, fbHeight := app.win.GetFramebufferSize()
	app.state.BindDrawFramebuffer(0)
	app.mesh.Viewport(0, 0, fbWidth, fbHeight)
	app.mesh.Clear()
	app.surface.BlitTo(0, fbWidth, fbHeight)
	libgl.PopDebugGroup()

	app.present(true)
	return nil
}

// present draws the overlay into the window and swaps. Panel input only records intent.
func (app *App) present(stereo bool) {
	if app.intent.Capture {
		app.intent.Capture = false
		app.capture(stereo)
	}

	imgui.NewFrame()
	actions := libui.DrawPanel(app.panelStatus())
	app.intent.Toggle = app.intent.Toggle || actions.Toggle
	app.intent.Capture = app.intent.Capture || actions.Capture
	app.intent.Disconnect = app.intent.Disconnect || actions.Disconnect
	app.intent.Reconnect = app.intent.Reconnect || actions.Reconnect

	app.state.BindDrawFramebuffer(0)
	app.gui.Draw()
	app.win.SwapBuffers()
}

func (app *App) capture(stereo bool) {
	var frame *libio.Frame
	if stereo {
		width, height := app.surface.Size()
		frame = libio.NewFrame(width, height, libio.FrameLayoutSideBySide)
		app.surface.ReadPixels(frame.Pix)
	} else {
		width, height := app.win.GetFramebufferSize()
		frame = libio.NewFrame(width, height, libio.FrameLayoutMono)
		libgl.ReadPixels(app.state, 0, width, height, frame.Pix)
	}
	frame.Timestamp = glfw.GetTime()

	path, err := app.capturer.Save(frame)
	if err != nil {
		log.Printf("Capture failed: %v\n", err)
		app.lastCapture = "capture failed"
		return
	}
	log.Printf("Captured %dx%d frame to %v\n", frame.Width, frame.Height, path)
	app.lastCapture = path
}

func (app *App) panelStatus() libui.PanelStatus {
	status := libui.PanelStatus{
		State:       app.session.State(),
		Err:         app.session.Err(),
		DisplayName: app.display.DisplayName(),
		Available:   true,
		Emulated:    app.emulator != nil,
		Renderer:    app.env.Renderer,
		LastCapture: app.lastCapture,
		ToggleKey:   app.cfg.Controls.ToggleKey,
		CaptureKey:  app.cfg.Controls.CaptureKey,
	}
	if app.emulator != nil {
		status.Connected = app.emulator.Connected()
	} else {
		status.Connected = true
	}
	status.SurfaceWidth, status.SurfaceHeight = app.surface.Size()
	if driver := app.session.Driver(); driver != nil && driver.Running() {
		status.Ticks = driver.Ticks()
	}
	return status
}

func (app *App) Delete() {
	app.gui.Delete()
	app.guiProg.Delete()
	app.surface.Delete()
	app.ctx.Delete()
	app.shader.Delete()
}
