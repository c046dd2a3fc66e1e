package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Box represents an axis-aligned box
type Box struct {
	core.Object
	Min core.Vec3
	Max core.Vec3
}

// NewBox creates a box from its two extreme corners
func NewBox(min, max core.Vec3, material *core.Material) *Box {
	bounds := core.NewAABBFromPoints(min, max)
	return &Box{
		Object: core.Object{Material: material},
		Min:    bounds.Min,
		Max:    bounds.Max,
	}
}

// NewBoxAt creates a box from a center and half-extents
func NewBoxAt(center, halfSize core.Vec3, material *core.Material) *Box {
	return NewBox(center.Subtract(halfSize), center.Add(halfSize), material)
}

// Hit intersects the ray with the three slabs and reports the face it crosses
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	nearAxis, farAxis := -1, -1

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)

		if math.Abs(direction) < 1e-12 {
			if origin < lo || origin > hi {
				return nil, false
			}
			continue
		}

		t1 := (lo - origin) / direction
		t2 := (hi - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear, nearAxis = t1, axis
		}
		if t2 < tFar {
			tFar, farAxis = t2, axis
		}
		if tNear > tFar {
			return nil, false
		}
	}

	t, axis := tNear, nearAxis
	if t <= tMin {
		// Origin inside the box: the exit face is the hit
		t, axis = tFar, farAxis
	}
	if t <= tMin || t > tMax || axis < 0 {
		return nil, false
	}

	point := ray.At(t)
	return b.NewHit(ray, t, b.faceNormal(point, axis), true), true
}

// faceNormal returns the outward normal of the face on the given axis nearest to point
func (b *Box) faceNormal(point core.Vec3, axis int) core.Vec3 {
	center := b.Min.Add(b.Max).Multiply(0.5)
	sign := 1.0
	if point.Axis(axis) < center.Axis(axis) {
		sign = -1.0
	}
	switch axis {
	case 0:
		return core.NewVec3(sign, 0, 0)
	case 1:
		return core.NewVec3(0, sign, 0)
	default:
		return core.NewVec3(0, 0, sign)
	}
}

// BoundingBox returns the box itself
func (b *Box) BoundingBox() core.AABB {
	return core.NewAABB(b.Min, b.Max)
}
