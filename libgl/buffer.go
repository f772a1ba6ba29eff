package libgl

import (
	"encoding/binary"
	"log"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type buffer struct {
	glId      uint32
	size      int
	flags     uint32
	immutable bool
}

type UnboundBuffer interface {
	LabeledGlObject
	Id() uint32
	// Allocate creates immutable storage initialized with data.
	Allocate(data any, flags int)
	AllocateEmpty(size int, flags int)
	// Grow replaces the storage with a larger one, discarding the contents.
	Grow(size int) bool
	Write(offset int, data any)
	Size() int
	Delete()
}

func NewBuffer() UnboundBuffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	return &buffer{
		glId: id,
	}
}

func (vbo *buffer) Id() uint32 {
	return vbo.glId
}

func (vbo *buffer) SetDebugLabel(label string) {
	setObjectLabel(gl.BUFFER, vbo.glId, label)
}

func (vbo *buffer) Size() int {
	return vbo.size
}

func (vbo *buffer) AllocateEmpty(size int, flags int) {
	if vbo.immutable {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	if size <= 0 {
		log.Panicf("buffer %d: invalid allocation size %d", vbo.glId, size)
	}
	gl.NamedBufferStorage(vbo.glId, size, nil, uint32(flags))
	vbo.size = size
	vbo.flags = uint32(flags)
	vbo.immutable = true
}

func (vbo *buffer) Allocate(data any, flags int) {
	if vbo.immutable {
		log.Panicf("buffer %d is immutable", vbo.glId)
	}
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	if size == 0 {
		log.Panicf("buffer %d: zero size allocation", vbo.glId)
	}
	gl.NamedBufferStorage(vbo.glId, size, Pointer(data), uint32(flags))
	vbo.size = size
	vbo.flags = uint32(flags)
	vbo.immutable = true
}

func (vbo *buffer) Grow(size int) bool {
	if size <= vbo.size {
		return false
	}
	newSize := growSize(vbo.size, size)

	// immutable storage cannot be respecified, so the name is swapped out
	var id uint32
	gl.CreateBuffers(1, &id)
	gl.NamedBufferStorage(id, newSize, nil, vbo.flags)
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = id
	vbo.size = newSize
	return true
}

func growSize(current, required int) int {
	size := current + current
	if required > size {
		return required
	}
	return size
}

func (vbo *buffer) Write(offset int, data any) {
	size := binary.Size(data)
	if size == -1 {
		log.Panicf("%T does not have a fixed size", data)
	}
	gl.NamedBufferSubData(vbo.glId, offset, size, Pointer(data))
}

func (vbo *buffer) Delete() {
	gl.DeleteBuffers(1, &vbo.glId)
	vbo.glId = 0
}
