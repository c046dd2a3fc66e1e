package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig

	// Hints are the render settings the scene was designed for
	Hints Hints

	// Background and Texture are built-in images, used unless the caller loads its own
	Background *tracer.Image
	Texture    *tracer.Image

	shapes []core.Shape
	lights []core.Light

	bvh       *core.BVH
	unbounded []core.Shape
	prepared  bool
}

// Hints are per-scene render settings
type Hints struct {
	MaxDepth       int
	Fresnel        bool
	TextureMapping bool
}

// Apply raises the depth budget to the hint and enables hinted features
func (h Hints) Apply(config tracer.Config) tracer.Config {
	if h.MaxDepth > config.MaxDepth {
		config.MaxDepth = h.MaxDepth
	}
	config.Fresnel = config.Fresnel || h.Fresnel
	config.TextureMapping = config.TextureMapping || h.TextureMapping
	return config
}

// New creates an empty scene viewed through the given camera
func New(cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		shapes:       make([]core.Shape, 0),
		lights:       make([]core.Light, 0),
	}
}

// Add inserts shapes, numbering them in insertion order starting at 1
func (s *Scene) Add(shapes ...core.Shape) {
	for _, shape := range shapes {
		shape.SetID(len(s.shapes) + 1)
		s.shapes = append(s.shapes, shape)
	}
	s.prepared = false
}

// AddLight appends lights to the scene
func (s *Scene) AddLight(lights ...core.Light) {
	s.lights = append(s.lights, lights...)
}

// Shapes returns the scene's shapes in insertion order
func (s *Scene) Shapes() []core.Shape {
	return s.shapes
}

// Lights returns the scene's lights in insertion order
func (s *Scene) Lights() []core.Light {
	return s.lights
}

// SetAspectRatio rebuilds the camera for a new image shape
func (s *Scene) SetAspectRatio(aspect float64) {
	s.CameraConfig.AspectRatio = aspect
	s.Camera = geometry.NewCamera(s.CameraConfig)
}

// Prepare splits the shapes into bounded ones, which go into a BVH, and unbounded
// ones, which are tested one by one. Call it once after the last Add and before
// tracing from several goroutines.
func (s *Scene) Prepare() {
	bounded := make([]core.Shape, 0, len(s.shapes))
	s.unbounded = s.unbounded[:0]

	for _, shape := range s.shapes {
		if u, ok := shape.(core.Unbounded); ok && u.Unbounded() {
			s.unbounded = append(s.unbounded, shape)
			continue
		}
		bounded = append(bounded, shape)
	}

	s.bvh = core.NewBVH(bounded)
	s.prepared = true
}

// Stats describes a prepared scene
type Stats struct {
	Shapes    int
	Bounded   int
	Unbounded int
	Lights    int
	BVHDepth  int
}

// Stats returns shape and light counts; BVH figures are zero until Prepare
func (s *Scene) Stats() Stats {
	stats := Stats{Shapes: len(s.shapes), Lights: len(s.lights)}
	if s.prepared {
		stats.Unbounded = len(s.unbounded)
		stats.Bounded = stats.Shapes - stats.Unbounded
		stats.BVHDepth = s.bvh.Depth()
	}
	return stats
}

// Intersect returns the nearest hit beyond core.RayEpsilon. Before Prepare it falls back
// to testing every shape.
func (s *Scene) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	if !s.prepared {
		return hitAll(s.shapes, ray, math.Inf(1))
	}

	tMax := math.Inf(1)
	closest, isHit := s.bvh.Hit(ray, core.RayEpsilon, tMax)
	if isHit {
		tMax = closest.T
	}
	if hit, ok := hitAll(s.unbounded, ray, tMax); ok {
		closest, isHit = hit, true
	}
	return closest, isHit
}

func hitAll(shapes []core.Shape, ray core.Ray, tMax float64) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	for _, shape := range shapes {
		if hit, ok := shape.Hit(ray, core.RayEpsilon, tMax); ok {
			closest, tMax = hit, hit.T
		}
	}
	return closest, closest != nil
}
