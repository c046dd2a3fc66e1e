package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal.
// When Checker is set the plane alternates between Material and Checker
// in squares of CheckerSize measured in the plane's own basis.
type Plane struct {
	core.Object
	Point       core.Vec3
	Normal      core.Vec3
	Checker     *core.Material
	CheckerSize float64

	tangent   core.Vec3
	bitangent core.Vec3
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material *core.Material) *Plane {
	p := &Plane{
		Object: core.Object{Material: material},
		Point:  point,
		Normal: normal.Normalize(),
	}

	helper := core.NewVec3(1, 0, 0)
	if math.Abs(p.Normal.X) > 0.9 {
		helper = core.NewVec3(0, 0, 1)
	}
	p.tangent = helper.Cross(p.Normal).Normalize()
	p.bitangent = p.Normal.Cross(p.tangent)
	return p
}

// NewCheckerPlane creates a plane alternating between two materials
func NewCheckerPlane(point, normal core.Vec3, a, b *core.Material, size float64) *Plane {
	p := NewPlane(point, normal, a)
	p.Checker = b
	p.CheckerSize = size
	return p
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < 1e-8 {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= tMin || t > tMax {
		return nil, false
	}

	hit := p.NewHit(ray, t, p.Normal, false)
	hit.Material = p.materialAt(hit.Point)
	return hit, true
}

func (p *Plane) materialAt(point core.Vec3) *core.Material {
	if p.Checker == nil || p.CheckerSize <= 0 {
		return p.Material
	}
	local := point.Subtract(p.Point)
	u := int(math.Floor(local.Dot(p.tangent) / p.CheckerSize))
	v := int(math.Floor(local.Dot(p.bitangent) / p.CheckerSize))
	if (u+v)%2 == 0 {
		return p.Material
	}
	return p.Checker
}

// BoundingBox is meaningless for an infinite plane; the scene tests planes linearly
func (p *Plane) BoundingBox() core.AABB {
	const largeValue = 1e6
	return core.NewAABB(
		core.NewVec3(-largeValue, -largeValue, -largeValue),
		core.NewVec3(largeValue, largeValue, largeValue),
	)
}

// Unbounded marks the plane as not belonging in the BVH
func (p *Plane) Unbounded() bool {
	return true
}
