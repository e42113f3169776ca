package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera is rebuilt every frame, it is not part of the graph.
type Camera struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// NewCamera derives the view from the camera node's world transform.
func NewCamera(cameraToWorld, projection mgl32.Mat4) Camera {
	return Camera{
		View:       cameraToWorld.Inv(),
		Projection: projection,
	}
}

// Perspective builds a projection from a vertical field of view in
// degrees. Non-positive heights count as 1.
func Perspective(fovy float32, width, height int, near, far float32) mgl32.Mat4 {
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}

	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(fovy), aspect, near, far)
}
