package libscn

import "github.com/go-gl/mathgl/mgl32"

// Cube returns a unit cube centered at the origin whose eight corners are
// colored with the corners of the RGB color cube.
func Cube() *Geometry {
	return &Geometry{
		Name: "cube",
		Positions: []mgl32.Vec3{
			{-0.5, -0.5, 0.5},
			{-0.5, 0.5, 0.5},
			{0.5, 0.5, 0.5},
			{0.5, -0.5, 0.5},
			{-0.5, -0.5, -0.5},
			{-0.5, 0.5, -0.5},
			{0.5, 0.5, -0.5},
			{0.5, -0.5, -0.5},
		},
		Colors: []mgl32.Vec4{
			{0.0, 0.0, 0.0, 1.0},
			{1.0, 0.0, 0.0, 1.0},
			{1.0, 1.0, 0.0, 1.0},
			{0.0, 1.0, 0.0, 1.0},
			{0.0, 0.0, 1.0, 1.0},
			{1.0, 0.0, 1.0, 1.0},
			{1.0, 1.0, 1.0, 1.0},
			{0.0, 1.0, 1.0, 1.0},
		},
		Indices: []uint32{
			1, 0, 3,
			3, 2, 1,
			2, 3, 7,
			7, 6, 2,
			3, 0, 4,
			4, 7, 3,
			6, 5, 1,
			1, 2, 6,
			4, 5, 6,
			6, 7, 4,
			5, 4, 0,
			0, 1, 5,
		},
	}
}
