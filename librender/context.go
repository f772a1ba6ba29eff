package librender

import "github.com/go-gl/mathgl/mgl32"

// Context is the part of the graphics context used to upload and draw indexed geometry.
// Locations are -1 when the active program does not expose the named input.
type Context interface {
	AttribLocation(name string) int32
	UniformLocation(name string) int32
	// UploadAttribute allocates a buffer holding data and feeds it to the vertex attribute
	// at location with a tightly packed float layout of the given component count.
	UploadAttribute(location int32, components int, data []float32)
	// UploadElements allocates a buffer holding data and binds it as the element buffer.
	// data is a []uint8, []uint16 or []uint32 matching indexType.
	UploadElements(data any, indexType IndexType)
	UniformMatrix4(location int32, m mgl32.Mat4)
	Viewport(x, y, width, height int)
	Clear()
	DrawElements(count int, indexType IndexType)
}
