package librender_test

import (
	"fmt"

	"stereo-gl/librender"

	"github.com/go-gl/mathgl/mgl32"
)

// recordingContext is a graphics context that only records what it was asked to do.
type recordingContext struct {
	attribs  map[string]int32
	uniforms map[string]int32
	calls    []string
	uploads  []attributeUpload
	elements any
	draws    []int
	matrices map[int32]mgl32.Mat4
}

type attributeUpload struct {
	location   int32
	components int
	data       []float32
}

func newRecordingContext() *recordingContext {
	return &recordingContext{
		attribs:  map[string]int32{librender.AttribPosition: 0, librender.AttribColor: 1},
		uniforms: map[string]int32{librender.UniformView: 3, librender.UniformProjection: 4},
		matrices: map[int32]mgl32.Mat4{},
	}
}

func (c *recordingContext) AttribLocation(name string) int32 {
	c.calls = append(c.calls, "AttribLocation "+name)
	if loc, ok := c.attribs[name]; ok {
		return loc
	}
	return -1
}

func (c *recordingContext) UniformLocation(name string) int32 {
	c.calls = append(c.calls, "UniformLocation "+name)
	if loc, ok := c.uniforms[name]; ok {
		return loc
	}
	return -1
}

func (c *recordingContext) UploadAttribute(location int32, components int, data []float32) {
	c.calls = append(c.calls, fmt.Sprintf("UploadAttribute %d", location))
	c.uploads = append(c.uploads, attributeUpload{location, components, data})
}

func (c *recordingContext) UploadElements(data any, indexType librender.IndexType) {
	c.calls = append(c.calls, "UploadElements "+indexType.String())
	c.elements = data
}

func (c *recordingContext) UniformMatrix4(location int32, m mgl32.Mat4) {
	c.calls = append(c.calls, fmt.Sprintf("UniformMatrix4 %d", location))
	c.matrices[location] = m
}

func (c *recordingContext) Viewport(x, y, width, height int) {
	c.calls = append(c.calls, fmt.Sprintf("Viewport %d %d %d %d", x, y, width, height))
}

func (c *recordingContext) Clear() {
	c.calls = append(c.calls, "Clear")
}

func (c *recordingContext) DrawElements(count int, indexType librender.IndexType) {
	c.calls = append(c.calls, fmt.Sprintf("DrawElements %d %v", count, indexType))
	c.draws = append(c.draws, count)
}

// gpuCalls counts calls that allocate or draw.
func (c *recordingContext) gpuCalls() int {
	return len(c.uploads) + len(c.draws) + func() int {
		if c.elements != nil {
			return 1
		}
		return 0
	}()
}
