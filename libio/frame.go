package libio

import (
	"errors"
	"fmt"
	goimg "image"
	"strings"
)

const MagicNumberFrame = 0x53434631

// MaxFrameSide is the largest width or height accepted when decoding.
const MaxFrameSide = 16384

var (
	ErrFrameSize = errors.New("invalid frame size")
	ErrNotStereo = errors.New("frame cannot be split into two eyes")
)

type FrameVersion uint32

const (
	FrameVersion1_000_000 = FrameVersion(1_000_000)
)

type FrameCompression uint32

const (
	FrameCompressionNone = FrameCompression(iota)
	FrameCompressionLz4
)

// FrameLayout tells how the views are arranged in a frame.
type FrameLayout uint8

const (
	FrameLayoutMono = FrameLayout(iota)
	FrameLayoutSideBySide
)

type FrameHeader struct {
	Check       uint32
	Version     FrameVersion
	Width       uint32
	Height      uint32
	Channels    uint8
	Layout      FrameLayout
	Compression FrameCompression
	Timestamp   float64
	Unused      [10]uint8
}

// Frame is a captured RGBA8 output surface.
//
// Note that the origin (0,0) is in the bottom left, as opposed to Go's top left origin
type Frame struct {
	Width, Height int
	Layout        FrameLayout
	Timestamp     float64
	Pix           []uint8
}

const FrameChannels = 4

func NewFrame(width, height int, layout FrameLayout) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Layout: layout,
		Pix:    make([]uint8, width*height*FrameChannels),
	}
}

func (f *Frame) Index(x, y int) int {
	return (x + y*f.Width) * FrameChannels
}

func (f *Frame) Bytes() int {
	return f.Width * f.Height * FrameChannels
}

// Half returns the left (0) or right (1) half of a side by side frame as a mono frame.
// The frame width must be even and at least 2.
func (f *Frame) Half(eye int) (*Frame, error) {
	if f.Width < 2 || f.Width%2 != 0 {
		return nil, fmt.Errorf("width %d: %w", f.Width, ErrNotStereo)
	}
	if eye != 0 && eye != 1 {
		return nil, fmt.Errorf("eye %d out of range", eye)
	}
	half := f.Width / 2
	dst := NewFrame(half, f.Height, FrameLayoutMono)
	dst.Timestamp = f.Timestamp
	for y := 0; y < f.Height; y++ {
		src := f.Index(eye*half, y)
		copy(dst.Pix[dst.Index(0, y):dst.Index(0, y+1)], f.Pix[src:src+half*FrameChannels])
	}
	return dst, nil
}

func (f *Frame) ToRGBA() *goimg.RGBA {
	rgba := goimg.NewRGBA(goimg.Rect(0, 0, f.Width, f.Height))
	stride := f.Width * FrameChannels
	for y := 0; y < f.Height; y++ {
		// flipped vertically
		src := f.Pix[y*stride : (y+1)*stride]
		dst := rgba.Pix[(f.Height-y-1)*rgba.Stride:]
		copy(dst[:stride], src)
	}
	return rgba
}

func ParseCompression(name string) (FrameCompression, error) {
	switch strings.ToLower(name) {
	case "none", "":
		return FrameCompressionNone, nil
	case "lz4":
		return FrameCompressionLz4, nil
	}
	return 0, fmt.Errorf("unknown frame compression %q", name)
}
