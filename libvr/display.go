package libvr

import (
	"errors"

	"stereo-gl/libutil"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrUnsupported      = errors.New("no stereo display api available")
	ErrNoDisplay        = errors.New("no stereo display found")
	ErrDeviceLost       = errors.New("stereo display disconnected")
	ErrNotPresenting    = errors.New("stereo display is not presenting")
	ErrPresentPending   = errors.New("present request is still pending")
	ErrPresentRejected  = errors.New("present request rejected")
	ErrPresentAbandoned = errors.New("present request abandoned")
)

type Eye int

const (
	LeftEye Eye = iota
	RightEye
)

func (e Eye) String() string {
	if e == LeftEye {
		return "left"
	}
	return "right"
}

type EyeParameters struct {
	// Offset from the head center to the eye, in meters.
	Offset mgl32.Vec3
	// Vertical field of view in degrees.
	FieldOfView  float32
	RenderWidth  int
	RenderHeight int
}

type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// Matrix returns the head-to-world transform of the pose.
func (p Pose) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2]).Mul4(p.Orientation.Mat4())
}

// FrameData is the per refresh snapshot of the display state.
type FrameData struct {
	Timestamp             float64
	Pose                  Pose
	LeftViewMatrix        mgl32.Mat4
	LeftProjectionMatrix  mgl32.Mat4
	RightViewMatrix       mgl32.Mat4
	RightProjectionMatrix mgl32.Mat4
}

// FrameCallback is invoked once per display refresh with the refresh time in seconds.
type FrameCallback func(timestamp float64)

// FrameHandle identifies a pending refresh registration. The zero handle is never issued.
type FrameHandle uint64

// SessionParams describes the presentation granted by a display.
type SessionParams struct {
	DisplayName string
	RefreshRate float64
}

type Display interface {
	DisplayName() string
	EyeParameters(eye Eye) EyeParameters
	// RequestPresent asks the display to start presenting. The request settles at an
	// indeterminate later time through the returned future.
	RequestPresent() *PresentFuture
	ExitPresent() error
	RequestAnimationFrame(callback FrameCallback) FrameHandle
	CancelAnimationFrame(handle FrameHandle)
	GetFrameData(frame *FrameData) error
	// SubmitFrame hands the composed output surface to the display.
	SubmitFrame() error
}

// StereoSurfaceSize is the size of a side by side output surface able to hold both eyes.
func StereoSurfaceSize(left, right EyeParameters) (width, height int) {
	width = 2 * libutil.MaxI(left.RenderWidth, right.RenderWidth)
	height = libutil.MaxI(left.RenderHeight, right.RenderHeight)
	return width, height
}
