package librender

import (
	"errors"
	"fmt"

	"stereo-gl/libscn"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrUnknownAttribute = errors.New("attribute is not active in the shader program")
	ErrEmptyUpload      = errors.New("upload data is empty")
)

// Uploader copies vertex and index data to the GPU and wires it to the active program.
type Uploader struct {
	ctx       Context
	IndexType IndexType
}

func NewUploader(ctx Context, indexType IndexType) *Uploader {
	return &Uploader{ctx: ctx, IndexType: indexType}
}

// UploadAndBind uploads data and associates it with the named vertex attribute.
// Positions ([]mgl32.Vec3) use 3 components per vertex, colors ([]mgl32.Vec4) 4.
// Index data ([]uint32) is bound as the element buffer instead; attribute is ignored for it.
func (u *Uploader) UploadAndBind(data any, attribute string) error {
	switch v := data.(type) {
	case []mgl32.Vec3:
		return u.uploadAttribute(attribute, 3, libscn.FlattenVec3(v))
	case []mgl32.Vec4:
		return u.uploadAttribute(attribute, 4, libscn.FlattenVec4(v))
	case []uint32:
		return u.uploadIndices(v)
	}
	return fmt.Errorf("cannot upload %T to %q", data, attribute)
}

func (u *Uploader) uploadAttribute(name string, components int, data []float32) error {
	if len(data) == 0 {
		return fmt.Errorf("attribute %q: %w", name, ErrEmptyUpload)
	}
	location := u.ctx.AttribLocation(name)
	if location < 0 {
		return fmt.Errorf("attribute %q: %w", name, ErrUnknownAttribute)
	}
	u.ctx.UploadAttribute(location, components, data)
	return nil
}

func (u *Uploader) uploadIndices(indices []uint32) error {
	if len(indices) == 0 {
		return fmt.Errorf("indices: %w", ErrEmptyUpload)
	}
	packed, err := u.IndexType.Pack(indices)
	if err != nil {
		return err
	}
	u.ctx.UploadElements(packed, u.IndexType)
	return nil
}
