package libscn

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"
)

var (
	ErrColorCountMismatch = errors.New("vertex and color counts differ")
	ErrIndexOutOfRange    = errors.New("index references a missing vertex")
	ErrIncompleteTriangle = errors.New("index count is not a multiple of 3")
	ErrEmptyGeometry      = errors.New("geometry has no vertices")
)

// Geometry is an indexed triangle list with one color per vertex.
// It is never mutated after construction.
type Geometry struct {
	Name      string
	Positions []mgl32.Vec3
	Colors    []mgl32.Vec4
	Indices   []uint32
}

func (geo *Geometry) VertexCount() int {
	return len(geo.Positions)
}

func (geo *Geometry) TriangleCount() int {
	return len(geo.Indices) / 3
}

func (geo *Geometry) Validate() error {
	if len(geo.Positions) == 0 {
		return fmt.Errorf("%v: %w", geo.Name, ErrEmptyGeometry)
	}
	if len(geo.Positions) != len(geo.Colors) {
		return fmt.Errorf("%v: %w (%d vertices, %d colors)", geo.Name, ErrColorCountMismatch, len(geo.Positions), len(geo.Colors))
	}
	if len(geo.Indices)%3 != 0 {
		return fmt.Errorf("%v: %w (%d indices)", geo.Name, ErrIncompleteTriangle, len(geo.Indices))
	}
	n := uint32(len(geo.Positions))
	if i := slices.IndexFunc(geo.Indices, func(idx uint32) bool { return idx >= n }); i != -1 {
		return fmt.Errorf("%v: %w (indices[%d] = %d, vertex count %d)", geo.Name, ErrIndexOutOfRange, i, geo.Indices[i], n)
	}
	return nil
}

// FlattenVec3 packs vectors into a tight xyz array.
func FlattenVec3(vectors []mgl32.Vec3) []float32 {
	data := make([]float32, 0, len(vectors)*3)
	for _, v := range vectors {
		data = append(data, v[:]...)
	}
	return data
}

// FlattenVec4 packs vectors into a tight xyzw array.
func FlattenVec4(vectors []mgl32.Vec4) []float32 {
	data := make([]float32, 0, len(vectors)*4)
	for _, v := range vectors {
		data = append(data, v[:]...)
	}
	return data
}

// MaxIndex returns the largest index, or 0 for an empty index list.
func (geo *Geometry) MaxIndex() uint32 {
	var max uint32
	for _, idx := range geo.Indices {
		if idx > max {
			max = idx
		}
	}
	return max
}
