package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Position    core.Vec3 // Eye position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Approximate up direction
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
}

// DefaultCameraConfig looks down -Z from the origin with a 30 degree field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        30,
		AspectRatio: 1,
	}
}

// Camera generates primary rays through normalized screen coordinates
type Camera struct {
	eye    core.Vec3
	look   core.Vec3 // unit viewing direction
	u      core.Vec3 // full-width horizontal extent of the image plane
	v      core.Vec3 // full-height vertical extent of the image plane
	aspect float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	aspect := config.AspectRatio
	if aspect <= 0 {
		aspect = 1
	}
	fov := config.VFov
	if fov <= 0 {
		fov = 30
	}

	look := config.LookAt.Subtract(config.Position).Normalize()
	right := look.Cross(config.Up).Normalize()
	up := right.Cross(look)

	height := 2 * math.Tan(fov*math.Pi/360.0)
	return &Camera{
		eye:    config.Position,
		look:   look,
		u:      right.Multiply(height * aspect),
		v:      up.Multiply(height),
		aspect: aspect,
	}
}

// RayThrough returns the ray through (x, y) in [0,1]², with (0,0) the bottom-left corner
func (c *Camera) RayThrough(x, y float64) core.Ray {
	x -= 0.5
	y -= 0.5
	direction := c.look.Add(c.u.Multiply(x)).Add(c.v.Multiply(y)).Normalize()
	return core.NewRay(c.eye, direction)
}

// AspectRatio returns width / height
func (c *Camera) AspectRatio() float64 {
	return c.aspect
}
