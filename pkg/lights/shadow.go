package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// maxShadowSteps bounds the number of transparent occluders a shadow ray may pass through
const maxShadowSteps = 256

// shadowWalk follows a shadow ray from point towards a light. Every transparent occluder filters
// the light by its transmissive color; an opaque occluder blocks it entirely. Occluders further
// away than maxDistance lie beyond the light and are ignored.
func shadowWalk(point, direction, color core.Vec3, maxDistance float64, scene core.Intersector) core.Vec3 {
	result := color
	origin := point
	remaining := maxDistance

	for step := 0; step < maxShadowSteps; step++ {
		hit, isHit := scene.Intersect(core.NewRay(origin, direction))
		if !isHit {
			return result
		}
		if remaining -= hit.T; remaining < core.RayEpsilon {
			return result
		}
		if hit.Material == nil || !hit.Material.IsTransmissive() {
			return core.Vec3{}
		}
		result = result.MultiplyVec(hit.Material.Transmissive)
		origin = hit.Point
	}
	return result
}

// distanceFalloff is 1/(a + b·d + c·d²), capped at 1
func distanceFalloff(distance float64, coeffs core.Attenuation) float64 {
	denominator := coeffs.Constant + coeffs.Linear*distance + coeffs.Quadratic*distance*distance
	if denominator <= 1.0 {
		return 1.0
	}
	return 1.0 / denominator
}

var infiniteDistance = math.Inf(1)
