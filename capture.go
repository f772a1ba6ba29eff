package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"stereo-gl/libio"
)

const captureExt = ".scf"

// Capturer writes frames to numbered files in a directory.
type Capturer struct {
	Dir         string
	Compression libio.FrameCompression
	next        int
}

func NewCapturer(dir string, compression string) (*Capturer, error) {
	c, err := libio.ParseCompression(compression)
	if err != nil {
		return nil, err
	}
	return &Capturer{Dir: dir, Compression: c}, nil
}

// Save writes frame to the first unused frame-NNNN file and returns its path.
func (c *Capturer) Save(frame *libio.Frame) (path string, err error) {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return "", fmt.Errorf("create capture directory: %w", err)
	}

	var file *os.File
	for {
		path = filepath.Join(c.Dir, fmt.Sprintf("frame-%04d%v", c.next, captureExt))
		c.next++
		file, err = os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create capture file: %w", err)
		}
		break
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(file)
	if err = libio.EncodeFrame(w, frame, c.Compression); err != nil {
		return "", fmt.Errorf("encode %v: %w", path, err)
	}
	if err = w.Flush(); err != nil {
		return "", fmt.Errorf("write %v: %w", path, err)
	}
	return path, nil
}
