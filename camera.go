package main

import (
	"stereo-gl/libutil"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a target point. It is used for the flat view.
type Camera struct {
	Target   mgl32.Vec3
	Distance float32
	// pitch, yaw in degrees
	Orientation mgl32.Vec2
	// in degrees
	VerticalFov       float32
	ViewportDimension mgl32.Vec2
	ClippingPlanes    mgl32.Vec2
	ViewMatrix        mgl32.Mat4
	ProjectionMatrix  mgl32.Mat4
}

func (cam *Camera) Position() mgl32.Vec3 {
	return cam.Target.Add(cam.Quaternion().Rotate(mgl32.Vec3{0, 0, cam.Distance}))
}

func (cam *Camera) UpdateViewMatrix() {
	r := cam.Quaternion()
	eye := cam.Position()
	cam.ViewMatrix = mgl32.LookAtV(eye, cam.Target, r.Rotate(mgl32.Vec3{0, 1, 0}))
}

func (cam *Camera) UpdateProjectionMatrix() {
	w, h := cam.ViewportDimension[0], cam.ViewportDimension[1]
	if w <= 0 || h <= 0 {
		return
	}
	n, f := cam.ClippingPlanes[0], cam.ClippingPlanes[1]
	cam.ProjectionMatrix = mgl32.Perspective(cam.VerticalFov*libutil.Deg2Rad, w/h, n, f)
}

func (cam *Camera) Quaternion() mgl32.Quat {
	yaw := mgl32.QuatRotate(cam.Orientation[1]*libutil.Deg2Rad, mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(cam.Orientation[0]*libutil.Deg2Rad, mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// Orbit rotates around the target. Pitch stays within ±89°.
func (cam *Camera) Orbit(pitch, yaw float32) {
	cam.Orientation[0] = libutil.Clamp(cam.Orientation[0]+pitch, -89, 89)
	cam.Orientation[1] += yaw
}

func (cam *Camera) Zoom(delta float32) {
	cam.Distance = libutil.Clamp(cam.Distance-delta, 0.5, cam.ClippingPlanes[1]/2)
}
