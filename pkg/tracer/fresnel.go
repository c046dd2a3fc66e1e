package tracer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Schlick approximates the reflectance at a boundary from a medium of index
// indexA into one of index indexB. Equal indices reflect nothing; total internal
// reflection reflects everything.
func Schlick(indexA, indexB, cosIncidence float64) float64 {
	if indexA == indexB {
		return 0
	}

	r0 := (indexA - indexB) / (indexA + indexB)
	r0 *= r0

	if indexA < indexB {
		return r0 + (1-r0)*math.Pow(1-cosIncidence, 5)
	}

	sinI := math.Sqrt(math.Max(0, 1-cosIncidence*cosIncidence))
	sinT := sinI * indexA / indexB
	if sinT > 1.0 {
		return 1.0
	}
	cosT := math.Sqrt(1 - sinT*sinT)
	return r0 + (1-r0)*math.Pow(1-cosT, 5)
}

// fresnel returns the reflectance for the boundary at hit, or 1 when Fresnel
// weighting is off or the object has no interior. The stack is left untouched.
func (t *Tracer) fresnel(hit *core.HitRecord, direction core.Vec3) float64 {
	if !t.config.Fresnel || !hit.HasInterior {
		return 1.0
	}

	tr := t.media.EnterOrExit(hit, direction)
	defer t.media.Undo(tr.Change)

	return Schlick(tr.From, tr.To, cosine(tr.Normal, direction))
}

// cosine of the angle between the facing normal and the reversed direction, clamped to [-1,1]
func cosine(normal, direction core.Vec3) float64 {
	return math.Max(-1, math.Min(1, normal.Dot(direction.Negate())))
}
