package core

// Logger is the leveled logging surface used by the library packages.
// *logging.Logger from github.com/op/go-logging satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Noticef(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{})   {}
func (NopLogger) Infof(string, ...interface{})    {}
func (NopLogger) Noticef(string, ...interface{})  {}
func (NopLogger) Warningf(string, ...interface{}) {}
func (NopLogger) Errorf(string, ...interface{})   {}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() AABB
	ID() int
	SetID(id int)
}

// Unbounded is implemented by shapes without a finite bounding box (e.g. infinite planes).
// The scene keeps them out of the BVH.
type Unbounded interface {
	Unbounded() bool
}

// Intersector answers "what does this ray hit first"
type Intersector interface {
	Intersect(ray Ray) (*HitRecord, bool)
}

// Scene is what the tracer needs from a scene
type Scene interface {
	Intersector
	Lights() []Light
}

// Camera generates primary rays through normalized screen coordinates
type Camera interface {
	RayThrough(x, y float64) Ray
	AspectRatio() float64
}

// Attenuation holds the distance falloff coefficients for point and spot lights
type Attenuation struct {
	Constant  float64 `json:"constant"`
	Linear    float64 `json:"linear"`
	Quadratic float64 `json:"quadratic"`
}

// Light interface shared by the directional, point and spot variants
type Light interface {
	// DistanceAttenuation returns the falloff factor in [0,1] at point
	DistanceAttenuation(point Vec3, coeffs Attenuation) float64

	// ShadowAttenuation returns the light color reaching point after occluders
	ShadowAttenuation(point Vec3, scene Intersector) Vec3

	// Color returns the emitted color as seen from point
	Color(point Vec3) Vec3

	// Direction returns the unit vector from point towards the light
	Direction(point Vec3) Vec3
}
