package libvr

import (
	"stereo-gl/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RefreshSource is implemented by displays whose refresh signal is pumped by the host loop.
type RefreshSource interface {
	// Pump runs the refresh callbacks that are due at now and returns how many ran.
	Pump(now float64) int
	// UntilRefresh returns the seconds left until the next refresh is due.
	UntilRefresh(now float64) float64
}

// Presenter receives the composed output surface of a submitted frame.
type Presenter interface {
	Present() error
}

type PresenterFunc func() error

func (fn PresenterFunc) Present() error {
	return fn()
}

type EmulatorConfig struct {
	Name         string
	RenderWidth  int
	RenderHeight int
	// Inter-pupillary distance in meters.
	Ipd float32
	// Vertical field of view in degrees.
	FieldOfView float32
	Near, Far   float32
	RefreshRate float64
	// Number of refreshes before a present request settles.
	PresentDelay int
	HeadPosition mgl32.Vec3
	Sway         bool
}

func DefaultEmulatorConfig() EmulatorConfig {
	return EmulatorConfig{
		Name:         "Emulated HMD",
		RenderWidth:  1080,
		RenderHeight: 1200,
		Ipd:          0.064,
		FieldOfView:  100,
		Near:         0.1,
		Far:          100,
		RefreshRate:  90,
		PresentDelay: 2,
		HeadPosition: mgl32.Vec3{0, 0, 2},
		Sway:         true,
	}
}

// Emulator is a desktop stand-in for a head-mounted display. Its refresh signal is
// driven by Pump and submitted frames are handed to a Presenter.
type Emulator struct {
	config      EmulatorConfig
	presenter   Presenter
	scheduler   *Scheduler
	connected   bool
	presenting  bool
	pending     *PresentFuture
	delay       int
	now         float64
	nextRefresh float64
	// pitch, yaw in degrees
	look      mgl32.Vec2
	submitted uint64
}

func NewEmulator(config EmulatorConfig, presenter Presenter) *Emulator {
	return &Emulator{
		config:    config,
		presenter: presenter,
		scheduler: NewScheduler(),
		connected: true,
	}
}

func (e *Emulator) DisplayName() string {
	return e.config.Name
}

func (e *Emulator) Config() EmulatorConfig {
	return e.config
}

func (e *Emulator) EyeParameters(eye Eye) EyeParameters {
	offset := e.config.Ipd / 2
	if eye == LeftEye {
		offset = -offset
	}
	return EyeParameters{
		Offset:       mgl32.Vec3{offset, 0, 0},
		FieldOfView:  e.config.FieldOfView,
		RenderWidth:  e.config.RenderWidth,
		RenderHeight: e.config.RenderHeight,
	}
}

func (e *Emulator) RequestPresent() *PresentFuture {
	if e.pending != nil {
		return e.pending
	}
	f := NewPresentFuture()
	switch {
	case !e.connected:
		f.Reject(ErrDeviceLost)
	case e.presenting:
		f.Resolve(e.sessionParams())
	default:
		e.pending = f
		e.delay = e.config.PresentDelay
	}
	return f
}

func (e *Emulator) ExitPresent() error {
	if e.pending != nil {
		e.pending.Reject(ErrPresentAbandoned)
		e.pending = nil
		return nil
	}
	if !e.presenting {
		return ErrNotPresenting
	}
	e.presenting = false
	return nil
}

func (e *Emulator) Presenting() bool {
	return e.presenting
}

func (e *Emulator) RequestAnimationFrame(callback FrameCallback) FrameHandle {
	return e.scheduler.Schedule(callback)
}

func (e *Emulator) CancelAnimationFrame(handle FrameHandle) {
	e.scheduler.Cancel(handle)
}

// PendingFrames returns the number of registered refresh callbacks.
func (e *Emulator) PendingFrames() int {
	return e.scheduler.Pending()
}

func (e *Emulator) GetFrameData(frame *FrameData) error {
	if !e.connected {
		return ErrDeviceLost
	}
	pose := e.Pose(e.now)
	head := pose.Matrix()

	frame.Timestamp = e.now
	frame.Pose = pose
	frame.LeftViewMatrix, frame.LeftProjectionMatrix = e.eyeMatrices(head, LeftEye)
	frame.RightViewMatrix, frame.RightProjectionMatrix = e.eyeMatrices(head, RightEye)
	return nil
}

func (e *Emulator) eyeMatrices(head mgl32.Mat4, eye Eye) (view, projection mgl32.Mat4) {
	params := e.EyeParameters(eye)
	eyeToWorld := head.Mul4(mgl32.Translate3D(params.Offset[0], params.Offset[1], params.Offset[2]))
	view = eyeToWorld.Inv()
	aspect := float32(params.RenderWidth) / float32(params.RenderHeight)
	projection = mgl32.Perspective(params.FieldOfView*libutil.Deg2Rad, aspect, e.config.Near, e.config.Far)
	return view, projection
}

// Pose returns the head pose at time t.
func (e *Emulator) Pose(t float64) Pose {
	position := e.config.HeadPosition
	pitch, yaw := e.look[0], e.look[1]
	if e.config.Sway {
		ts := float32(t)
		position = position.Add(mgl32.Vec3{0.05 * math32.Sin(ts*0.7), 0.02 * math32.Sin(ts*1.3), 0})
		yaw += 4 * math32.Sin(ts*0.5)
	}
	orientation := mgl32.QuatRotate(yaw*libutil.Deg2Rad, mgl32.Vec3{0, 1, 0}).
		Mul(mgl32.QuatRotate(pitch*libutil.Deg2Rad, mgl32.Vec3{1, 0, 0}))
	return Pose{Position: position, Orientation: orientation}
}

// Look turns the emulated head by the given angles in degrees. Pitch is clamped to ±89°.
func (e *Emulator) Look(pitch, yaw float32) {
	e.look[0] = libutil.Clamp(e.look[0]+pitch, -89, 89)
	e.look[1] += yaw
}

func (e *Emulator) SubmitFrame() error {
	if !e.connected {
		return ErrDeviceLost
	}
	if !e.presenting {
		return ErrNotPresenting
	}
	e.submitted++
	if e.presenter == nil {
		return nil
	}
	return e.presenter.Present()
}

// Submitted returns the number of frames submitted while presenting.
func (e *Emulator) Submitted() uint64 {
	return e.submitted
}

func (e *Emulator) Pump(now float64) int {
	e.now = now
	if e.config.RefreshRate > 0 {
		if now < e.nextRefresh {
			return 0
		}
		period := 1 / e.config.RefreshRate
		e.nextRefresh += period
		if e.nextRefresh <= now {
			e.nextRefresh = now + period
		}
	}

	if e.pending != nil {
		if e.delay <= 0 {
			e.presenting = true
			e.pending.Resolve(e.sessionParams())
			e.pending = nil
		} else {
			e.delay--
		}
	}

	return e.scheduler.Run(now)
}

func (e *Emulator) UntilRefresh(now float64) float64 {
	if e.nextRefresh <= now {
		return 0
	}
	return e.nextRefresh - now
}

// Disconnect simulates unplugging the display. Pending requests are rejected and
// subsequent frame calls fail with ErrDeviceLost.
func (e *Emulator) Disconnect() {
	e.connected = false
	e.presenting = false
	if e.pending != nil {
		e.pending.Reject(ErrDeviceLost)
		e.pending = nil
	}
}

func (e *Emulator) Connect() {
	e.connected = true
}

func (e *Emulator) Connected() bool {
	return e.connected
}

func (e *Emulator) sessionParams() SessionParams {
	return SessionParams{
		DisplayName: e.config.Name,
		RefreshRate: e.config.RefreshRate,
	}
}

// EmulatorProvider exposes a single emulated display unless disabled.
type EmulatorProvider struct {
	Config    EmulatorConfig
	Presenter Presenter
	Disabled  bool
}

func (p *EmulatorProvider) Name() string {
	return "emulator"
}

func (p *EmulatorProvider) Displays() ([]Display, error) {
	if p.Disabled {
		return nil, nil
	}
	return []Display{NewEmulator(p.Config, p.Presenter)}, nil
}
