package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is a Y-aligned truncated cone standing on Base. With equal radii it is a cylinder.
// Only capped cones enclose a volume.
type Cone struct {
	core.Object
	Base         core.Vec3
	Height       float64
	BottomRadius float64
	TopRadius    float64
	Capped       bool

	slope float64 // radius change per unit of height
}

// NewCone creates a new cone or frustum
func NewCone(base core.Vec3, height, bottomRadius, topRadius float64, capped bool, material *core.Material) (*Cone, error) {
	if height <= 0 {
		return nil, fmt.Errorf("cone height must be positive, got %f", height)
	}
	if bottomRadius < 0 || topRadius < 0 {
		return nil, fmt.Errorf("cone radii must be non-negative, got %f and %f", bottomRadius, topRadius)
	}
	if bottomRadius == 0 && topRadius == 0 {
		return nil, fmt.Errorf("cone needs at least one non-zero radius")
	}

	return &Cone{
		Object:       core.Object{Material: material},
		Base:         base,
		Height:       height,
		BottomRadius: bottomRadius,
		TopRadius:    topRadius,
		Capped:       capped,
		slope:        (topRadius - bottomRadius) / height,
	}, nil
}

// Hit tests the lateral surface and, when capped, both end discs
func (c *Cone) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	o := ray.Origin.Subtract(c.Base)
	d := ray.Direction

	bestT := tMax
	var bestNormal core.Vec3
	found := false

	consider := func(t float64, normal core.Vec3) {
		if t > tMin && t <= bestT {
			bestT, bestNormal, found = t, normal, true
		}
	}

	// Lateral surface: x² + z² = (r0 + k·y)²
	k := c.slope
	r0 := c.BottomRadius
	radiusAtOrigin := r0 + k*o.Y
	a := d.X*d.X + d.Z*d.Z - k*k*d.Y*d.Y
	b := 2 * (o.X*d.X + o.Z*d.Z - k*d.Y*radiusAtOrigin)
	cc := o.X*o.X + o.Z*o.Z - radiusAtOrigin*radiusAtOrigin

	for _, t := range solveQuadratic(a, b, cc) {
		y := o.Y + t*d.Y
		if y < 0 || y > c.Height {
			continue
		}
		p := o.Add(d.Multiply(t))
		consider(t, core.NewVec3(p.X, -k*(r0+k*y), p.Z).Normalize())
	}

	if c.Capped {
		if math.Abs(d.Y) > 1e-12 {
			if t := -o.Y / d.Y; c.withinDisc(o.Add(d.Multiply(t)), c.BottomRadius) {
				consider(t, core.NewVec3(0, -1, 0))
			}
			if t := (c.Height - o.Y) / d.Y; c.withinDisc(o.Add(d.Multiply(t)), c.TopRadius) {
				consider(t, core.NewVec3(0, 1, 0))
			}
		}
	}

	if !found {
		return nil, false
	}
	return c.NewHit(ray, bestT, bestNormal, c.Capped), true
}

func (c *Cone) withinDisc(p core.Vec3, radius float64) bool {
	return p.X*p.X+p.Z*p.Z <= radius*radius
}

// solveQuadratic returns the real roots of a·t² + b·t + c = 0, degenerating to the linear case
func solveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < 1e-12 {
		if math.Abs(b) < 1e-12 {
			return nil
		}
		return []float64{-c / b}
	}
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}
	sqrtD := math.Sqrt(discriminant)
	return []float64{(-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a)}
}

// BoundingBox returns the box around the wider of the two ends
func (c *Cone) BoundingBox() core.AABB {
	r := math.Max(c.BottomRadius, c.TopRadius)
	return core.NewAABB(
		c.Base.Subtract(core.NewVec3(r, 0, r)),
		c.Base.Add(core.NewVec3(r, c.Height, r)),
	)
}
