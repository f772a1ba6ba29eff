package libio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

func EncodeFrame(w io.Writer, frame *Frame, compression FrameCompression) (err error) {
	if len(frame.Pix) != frame.Bytes() {
		return fmt.Errorf("frame has %d bytes of pixels, expected %d", len(frame.Pix), frame.Bytes())
	}

	bw := &BinaryWriter{
		Dst:   w,
		Order: binary.LittleEndian,
	}

	header := FrameHeader{
		Check:       MagicNumberFrame,
		Version:     FrameVersion1_000_000,
		Width:       uint32(frame.Width),
		Height:      uint32(frame.Height),
		Channels:    FrameChannels,
		Layout:      frame.Layout,
		Compression: compression,
		Timestamp:   frame.Timestamp,
	}

	if !bw.WriteRef(header) {
		return fmt.Errorf("could not write frame header: %w", bw.Err)
	}

	switch compression {
	case FrameCompressionNone:
		if !bw.WriteBytes(frame.Pix) {
			return fmt.Errorf("could not write frame pixels: %w", bw.Err)
		}
	case FrameCompressionLz4:
		lzw := lz4.NewWriter(w)
		err = lzw.Apply(lz4.CompressionLevelOption(lz4.Fast))
		if err == nil {
			_, err = lzw.Write(frame.Pix)
		}
		if err == nil {
			err = lzw.Close()
		}
		if err != nil {
			return fmt.Errorf("could not compress frame pixels: %w", err)
		}
	default:
		return fmt.Errorf("unsupported frame compression %d", compression)
	}

	return nil
}
