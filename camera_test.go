package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func newTestCamera() *Camera {
	cam := &Camera{
		Distance:          3,
		VerticalFov:       45,
		ViewportDimension: mgl32.Vec2{640, 480},
		ClippingPlanes:    mgl32.Vec2{0.1, 100},
	}
	cam.UpdateViewMatrix()
	cam.UpdateProjectionMatrix()
	return cam
}

func TestCameraLooksAtTarget(t *testing.T) {
	cam := newTestCamera()
	assert.True(t, cam.Position().ApproxEqual(mgl32.Vec3{0, 0, 3}))

	target := cam.ViewMatrix.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, target.X(), 1e-5)
	assert.InDelta(t, 0, target.Y(), 1e-5)
	assert.InDelta(t, -3, target.Z(), 1e-5)
}

func TestCameraOrbitKeepsDistance(t *testing.T) {
	cam := newTestCamera()
	cam.Orbit(-30, 45)
	cam.UpdateViewMatrix()
	assert.InDelta(t, 3, cam.Position().Len(), 1e-5)

	target := cam.ViewMatrix.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -3, target.Z(), 1e-5)
}

func TestCameraOrbitClampsPitch(t *testing.T) {
	cam := newTestCamera()
	cam.Orbit(500, 0)
	assert.Equal(t, float32(89), cam.Orientation[0])
	cam.Orbit(-500, 0)
	assert.Equal(t, float32(-89), cam.Orientation[0])
}

func TestCameraProjection(t *testing.T) {
	cam := newTestCamera()
	want := mgl32.Perspective(mgl32.DegToRad(45), 640.0/480.0, 0.1, 100)
	assert.True(t, want.ApproxEqualThreshold(cam.ProjectionMatrix, 1e-6))

	// a minimized window keeps the last projection
	cam.ViewportDimension = mgl32.Vec2{0, 0}
	cam.UpdateProjectionMatrix()
	assert.True(t, want.ApproxEqualThreshold(cam.ProjectionMatrix, 1e-6))
}

func TestCameraZoom(t *testing.T) {
	cam := newTestCamera()
	cam.Zoom(1)
	assert.Equal(t, float32(2), cam.Distance)
	cam.Zoom(10)
	assert.Equal(t, float32(0.5), cam.Distance)
}
