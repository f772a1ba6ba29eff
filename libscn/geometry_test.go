package libscn_test

import (
	"testing"

	"stereo-gl/libscn"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeShape(t *testing.T) {
	cube := libscn.Cube()
	require.NoError(t, cube.Validate())

	assert.Equal(t, 8, cube.VertexCount())
	assert.Len(t, cube.Colors, 8)
	assert.Len(t, cube.Indices, 36)
	assert.Equal(t, 12, cube.TriangleCount())
	for i, idx := range cube.Indices {
		assert.Less(t, idx, uint32(8), "indices[%d]", i)
	}
	assert.Equal(t, uint32(7), cube.MaxIndex())
}

func TestCubeIsFreshCopy(t *testing.T) {
	a := libscn.Cube()
	a.Indices[0] = 99
	assert.Equal(t, uint32(1), libscn.Cube().Indices[0])
}

func TestValidateColorMismatch(t *testing.T) {
	geo := libscn.Cube()
	geo.Colors = geo.Colors[:7]
	assert.ErrorIs(t, geo.Validate(), libscn.ErrColorCountMismatch)
}

func TestValidateIndexOutOfRange(t *testing.T) {
	geo := libscn.Cube()
	geo.Indices = append([]uint32{}, geo.Indices...)
	geo.Indices[5] = 8
	assert.ErrorIs(t, geo.Validate(), libscn.ErrIndexOutOfRange)
}

func TestValidateIncompleteTriangle(t *testing.T) {
	geo := libscn.Cube()
	geo.Indices = geo.Indices[:35]
	assert.ErrorIs(t, geo.Validate(), libscn.ErrIncompleteTriangle)
}

func TestValidateEmpty(t *testing.T) {
	geo := &libscn.Geometry{Name: "empty"}
	assert.ErrorIs(t, geo.Validate(), libscn.ErrEmptyGeometry)
}

func TestFlatten(t *testing.T) {
	geo := &libscn.Geometry{
		Positions: []mgl32.Vec3{{1, 2, 3}, {4, 5, 6}},
		Colors:    []mgl32.Vec4{{0.1, 0.2, 0.3, 0.4}, {0.5, 0.6, 0.7, 0.8}},
	}
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, libscn.FlattenVec3(geo.Positions))
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}, libscn.FlattenVec4(geo.Colors))
}
