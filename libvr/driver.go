package libvr

import "github.com/go-gl/mathgl/mgl32"

// EyeRenderer draws the scene into the bound output surface.
type EyeRenderer interface {
	Clear()
	Viewport(x, y, width, height int)
	SetMatrices(view, projection mgl32.Mat4)
	Draw()
}

// FrameDriver renders one side by side stereo frame per display refresh until stopped.
type FrameDriver struct {
	display  Display
	surface  Surface
	renderer EyeRenderer
	onLost   func(error)
	handle   FrameHandle
	running  bool
	frame    FrameData
	ticks    uint64
}

// NewFrameDriver creates a stopped driver. onLost is called, after the driver has
// stopped itself, when the display fails during a tick.
func NewFrameDriver(display Display, surface Surface, renderer EyeRenderer, onLost func(error)) *FrameDriver {
	return &FrameDriver{
		display:  display,
		surface:  surface,
		renderer: renderer,
		onLost:   onLost,
	}
}

func (d *FrameDriver) Start() {
	if d.running {
		return
	}
	d.running = true
	d.handle = d.display.RequestAnimationFrame(d.tick)
}

// Stop cancels the pending refresh registration. No tick runs after Stop returns.
func (d *FrameDriver) Stop() {
	if !d.running {
		return
	}
	d.running = false
	d.display.CancelAnimationFrame(d.handle)
	d.handle = 0
}

func (d *FrameDriver) Running() bool {
	return d.running
}

// Ticks returns the number of frames submitted.
func (d *FrameDriver) Ticks() uint64 {
	return d.ticks
}

// Frame returns the frame data of the latest tick.
func (d *FrameDriver) Frame() FrameData {
	return d.frame
}

func (d *FrameDriver) tick(timestamp float64) {
	if !d.running {
		return
	}
	d.handle = d.display.RequestAnimationFrame(d.tick)

	if err := d.display.GetFrameData(&d.frame); err != nil {
		d.lose(err)
		return
	}

	d.surface.Bind()
	d.renderer.Clear()

	width, height := d.surface.Size()
	half := width / 2
	d.drawEye(0, half, height, d.frame.LeftViewMatrix, d.frame.LeftProjectionMatrix)
	d.drawEye(half, half, height, d.frame.RightViewMatrix, d.frame.RightProjectionMatrix)

	if err := d.display.SubmitFrame(); err != nil {
		d.lose(err)
		return
	}
	d.ticks++
}

func (d *FrameDriver) drawEye(x, width, height int, view, projection mgl32.Mat4) {
	d.renderer.Viewport(x, 0, width, height)
	d.renderer.SetMatrices(view, projection)
	d.renderer.Draw()
}

func (d *FrameDriver) lose(err error) {
	d.Stop()
	if d.onLost != nil {
		d.onLost(err)
	}
}
