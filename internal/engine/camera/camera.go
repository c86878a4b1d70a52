// Package camera provides the orbit camera used to view the tube.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tubescene/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FOV    float32 // Vertical field of view, degrees
	Near   float32
	Far    float32
	Aspect float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	home pose
}

// pose is the part of the camera Reset restores.
type pose struct {
	center               math.Vec3
	distance, rotX, rotY float32
}

func (c *OrbitCamera) currentPose() pose {
	return pose{c.Center, c.Distance, c.RotationX, c.RotationY}
}

// NewOrbitCamera creates a camera at (0, 0, distance) looking at the origin.
func NewOrbitCamera(fov, near, far, distance float32) *OrbitCamera {
	c := &OrbitCamera{
		Distance:        distance,
		FOV:             fov,
		Near:            near,
		Far:             far,
		Aspect:          1,
		MinDistance:     near * 10,
		MaxDistance:     far * 0.8,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
	c.home = c.currentPose()
	return c
}

// Reset returns to the pose the camera was created with. Projection and
// constraint settings are left alone.
func (c *OrbitCamera) Reset() {
	c.Center = c.home.center
	c.Distance = c.home.distance
	c.RotationX, c.RotationY = c.home.rotX, c.home.rotY
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	sinX, cosX := math32.Sincos(c.RotationX)
	sinY, cosY := math32.Sincos(c.RotationY)

	return c.Center.Add(math.Vec3{
		X: c.Distance * cosX * sinY,
		Y: c.Distance * sinX,
		Z: c.Distance * cosX * cosY,
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// SetAspect updates the aspect ratio; non-positive values are ignored.
func (c *OrbitCamera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// ProjectionMatrix returns the perspective projection for the current aspect.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), c.Aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = math.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers on a bounding box and backs off until its bounding
// sphere fills the vertical field of view.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)

	radius := hi.Sub(lo).Length() / 2
	half := math.Radians(c.FOV) / 2
	c.Distance = math.Clamp(radius/math32.Sin(half), c.MinDistance, c.MaxDistance)

	c.RotationX = 0
	c.RotationY = 0
}
