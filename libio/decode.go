package libio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/pierrec/lz4/v4"
)

func DecodeFrame(r io.Reader) (frame *Frame, err error) {
	br := &BinaryReader{
		Src:   r,
		Order: binary.LittleEndian,
	}

	header := FrameHeader{}
	if !br.ReadRef(&header) {
		return nil, fmt.Errorf("expected frame header: %w", br.Err)
	}

	if header.Check != MagicNumberFrame {
		return nil, fmt.Errorf("frame header is corrupt; byte 0x%08x", br.LastIndex)
	}

	if header.Version != FrameVersion1_000_000 {
		return nil, fmt.Errorf("frame version %d unsupported; byte 0x%08x", header.Version, br.LastIndex)
	}

	if header.Channels != FrameChannels {
		return nil, fmt.Errorf("frame has %d channels, expected %d", header.Channels, FrameChannels)
	}

	if err := checkFrameSize(header.Width, header.Height); err != nil {
		return nil, err
	}

	frame = NewFrame(int(header.Width), int(header.Height), header.Layout)
	frame.Timestamp = header.Timestamp

	switch header.Compression {
	case FrameCompressionNone:
		br.ReadFull(frame.Pix)
		err = br.Err
	case FrameCompressionLz4:
		lzr := lz4.NewReader(br.Src)
		_, err = io.ReadFull(lzr, frame.Pix)
	default:
		err = fmt.Errorf("unsupported compression %d", header.Compression)
	}

	if err != nil {
		return nil, fmt.Errorf("could not read frame pixels: %w", err)
	}

	return frame, nil
}

// checkFrameSize rejects dimensions that could not come from a render target
// before any pixel memory is allocated.
func checkFrameSize(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("frame size %dx%d is empty: %w", width, height, ErrFrameSize)
	}
	if width > MaxFrameSide || height > MaxFrameSide {
		return fmt.Errorf("frame size %dx%d exceeds %d: %w", width, height, MaxFrameSide, ErrFrameSize)
	}
	if uint64(width)*uint64(height)*FrameChannels > math.MaxInt {
		return fmt.Errorf("frame size %dx%d does not fit in memory: %w", width, height, ErrFrameSize)
	}
	return nil
}
