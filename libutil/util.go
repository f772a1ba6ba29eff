package libutil

import (
	"math"
)

const Deg2Rad = float32(math.Pi / 180)

// Returned to the gl loader for procs the window system does not provide.
const InvalidAddress uintptr = 0xffff_ffff_ffff_ffff

func MaxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Fit returns the largest rectangle with the aspect ratio of srcW x srcH that fits
// centered into dstW x dstH.
func Fit(srcW, srcH, dstW, dstH int) (x, y, w, h int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, dstW, dstH
	}
	w = dstW
	h = dstW * srcH / srcW
	if h > dstH {
		h = dstH
		w = dstH * srcW / srcH
	}
	return (dstW - w) / 2, (dstH - h) / 2, w, h
}
