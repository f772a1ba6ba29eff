package libvr_test

import (
	"fmt"

	"stereo-gl/libvr"

	"github.com/go-gl/mathgl/mgl32"
)

// events is a shared, ordered log of calls made on the fakes below.
type events []string

func (ev *events) add(format string, args ...any) {
	*ev = append(*ev, fmt.Sprintf(format, args...))
}

type fakeDisplay struct {
	log        *events
	scheduler  *libvr.Scheduler
	left       libvr.EyeParameters
	right      libvr.EyeParameters
	future     *libvr.PresentFuture
	frame      libvr.FrameData
	frameErr   error
	submitErr  error
	requests   int
	exits      int
	submits    int
	presenting bool
}

func newFakeDisplay(log *events) *fakeDisplay {
	return &fakeDisplay{
		log:       log,
		scheduler: libvr.NewScheduler(),
		left:      libvr.EyeParameters{RenderWidth: 1080, RenderHeight: 1200},
		right:     libvr.EyeParameters{RenderWidth: 1080, RenderHeight: 1200},
		frame: libvr.FrameData{
			LeftViewMatrix:        mgl32.Translate3D(1, 0, 0),
			LeftProjectionMatrix:  mgl32.Scale3D(1, 1, 1),
			RightViewMatrix:       mgl32.Translate3D(-1, 0, 0),
			RightProjectionMatrix: mgl32.Scale3D(2, 2, 2),
		},
	}
}

func (d *fakeDisplay) DisplayName() string {
	return "fake"
}

func (d *fakeDisplay) EyeParameters(eye libvr.Eye) libvr.EyeParameters {
	if eye == libvr.LeftEye {
		return d.left
	}
	return d.right
}

func (d *fakeDisplay) RequestPresent() *libvr.PresentFuture {
	d.requests++
	d.future = libvr.NewPresentFuture()
	return d.future
}

func (d *fakeDisplay) resolve() {
	d.presenting = true
	d.future.Resolve(libvr.SessionParams{DisplayName: "fake", RefreshRate: 90})
}

func (d *fakeDisplay) ExitPresent() error {
	d.exits++
	if !d.presenting {
		return libvr.ErrNotPresenting
	}
	d.presenting = false
	return nil
}

func (d *fakeDisplay) RequestAnimationFrame(callback libvr.FrameCallback) libvr.FrameHandle {
	d.log.add("RequestAnimationFrame")
	return d.scheduler.Schedule(callback)
}

func (d *fakeDisplay) CancelAnimationFrame(handle libvr.FrameHandle) {
	d.log.add("CancelAnimationFrame")
	d.scheduler.Cancel(handle)
}

func (d *fakeDisplay) GetFrameData(frame *libvr.FrameData) error {
	d.log.add("GetFrameData")
	if d.frameErr != nil {
		return d.frameErr
	}
	*frame = d.frame
	return nil
}

func (d *fakeDisplay) SubmitFrame() error {
	d.log.add("SubmitFrame")
	d.submits++
	return d.submitErr
}

// refresh fires one display refresh.
func (d *fakeDisplay) refresh() int {
	return d.scheduler.Run(0)
}

type fakeSurface struct {
	log           *events
	width, height int
	resizes       int
}

func (s *fakeSurface) Size() (int, int) {
	return s.width, s.height
}

func (s *fakeSurface) Resize(width, height int) {
	s.log.add("Resize %d %d", width, height)
	s.width, s.height = width, height
	s.resizes++
}

func (s *fakeSurface) Bind() {
	s.log.add("Bind")
}

type fakeRenderer struct {
	log      *events
	draws    int
	lastView mgl32.Mat4
	lastProj mgl32.Mat4
}

func (r *fakeRenderer) Clear() {
	r.log.add("Clear")
}

func (r *fakeRenderer) Viewport(x, y, width, height int) {
	r.log.add("Viewport %d %d %d %d", x, y, width, height)
}

func (r *fakeRenderer) SetMatrices(view, projection mgl32.Mat4) {
	r.log.add("SetMatrices %v", view.Col(3).X())
	r.lastView, r.lastProj = view, projection
}

func (r *fakeRenderer) Draw() {
	r.log.add("Draw")
	r.draws++
}

type harness struct {
	log      *events
	display  *fakeDisplay
	surface  *fakeSurface
	renderer *fakeRenderer
}

func newHarness() *harness {
	log := &events{}
	return &harness{
		log:      log,
		display:  newFakeDisplay(log),
		surface:  &fakeSurface{log: log, width: 640, height: 480},
		renderer: &fakeRenderer{log: log},
	}
}
