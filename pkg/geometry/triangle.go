package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices.
// A triangle encloses no volume, so it never takes part in refraction.
type Triangle struct {
	core.Object
	V0, V1, V2 core.Vec3
	normal     core.Vec3
}

// NewTriangle creates a new triangle; the normal follows the V0→V1→V2 winding
func NewTriangle(v0, v1, v2 core.Vec3, material *core.Material) *Triangle {
	return &Triangle{
		Object: core.Object{Material: material},
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
	}
}

// Hit uses the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	const epsilon = 1e-12

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	dist := f * edge2.Dot(q)
	if dist <= tMin || dist > tMax {
		return nil, false
	}

	return t.NewHit(ray, dist, t.normal, false), true
}

// BoundingBox returns the bounds of the three vertices
func (t *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// Normal returns the geometric normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
