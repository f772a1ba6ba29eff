package librender

import (
	"errors"
	"fmt"

	"stereo-gl/libscn"

	"github.com/go-gl/mathgl/mgl32"
)

// Shader inputs the cube program has to expose.
const (
	AttribPosition    = "vPosition"
	AttribColor       = "vColor"
	UniformView       = "view_matrix"
	UniformProjection = "proj_matrix"
)

var ErrUnknownUniform = errors.New("uniform is not active in the shader program")

// Mesh is a geometry resident on the GPU together with the uniform
// locations needed to draw it from an arbitrary viewpoint.
type Mesh struct {
	ctx          Context
	name         string
	indexCount   int
	indexType    IndexType
	viewLocation int32
	projLocation int32
}

// NewMesh validates geo and uploads it. Nothing is sent to the GPU if validation fails.
func NewMesh(ctx Context, geo *libscn.Geometry, indexType IndexType) (*Mesh, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	if geo.MaxIndex() > indexType.Max() {
		return nil, fmt.Errorf("%v: %d vertices need a wider index type than %v: %w", geo.Name, geo.VertexCount(), indexType, ErrIndexTooLarge)
	}

	mesh := &Mesh{
		ctx:          ctx,
		name:         geo.Name,
		indexCount:   len(geo.Indices),
		indexType:    indexType,
		viewLocation: ctx.UniformLocation(UniformView),
		projLocation: ctx.UniformLocation(UniformProjection),
	}
	if mesh.viewLocation < 0 {
		return nil, fmt.Errorf("uniform %q: %w", UniformView, ErrUnknownUniform)
	}
	if mesh.projLocation < 0 {
		return nil, fmt.Errorf("uniform %q: %w", UniformProjection, ErrUnknownUniform)
	}

	up := NewUploader(ctx, indexType)
	if err := up.UploadAndBind(geo.Positions, AttribPosition); err != nil {
		return nil, err
	}
	if err := up.UploadAndBind(geo.Colors, AttribColor); err != nil {
		return nil, err
	}
	if err := up.UploadAndBind(geo.Indices, ""); err != nil {
		return nil, err
	}
	return mesh, nil
}

func (mesh *Mesh) Name() string {
	return mesh.name
}

func (mesh *Mesh) IndexCount() int {
	return mesh.indexCount
}

func (mesh *Mesh) IndexType() IndexType {
	return mesh.indexType
}

// Clear clears the color and depth targets of the bound surface.
func (mesh *Mesh) Clear() {
	mesh.ctx.Clear()
}

func (mesh *Mesh) Viewport(x, y, width, height int) {
	mesh.ctx.Viewport(x, y, width, height)
}

func (mesh *Mesh) SetMatrices(view, projection mgl32.Mat4) {
	mesh.ctx.UniformMatrix4(mesh.viewLocation, view)
	mesh.ctx.UniformMatrix4(mesh.projLocation, projection)
}

// Draw issues one indexed triangle draw over the whole index list.
func (mesh *Mesh) Draw() {
	mesh.ctx.DrawElements(mesh.indexCount, mesh.indexType)
}
