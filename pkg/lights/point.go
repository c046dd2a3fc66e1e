package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight emits equally in all directions from Position
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a point light
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

func (l *PointLight) Type() LightType {
	return LightTypePoint
}

// DistanceAttenuation applies the constant/linear/quadratic falloff
func (l *PointLight) DistanceAttenuation(point core.Vec3, coeffs core.Attenuation) float64 {
	return distanceFalloff(l.Position.Subtract(point).Length(), coeffs)
}

// ShadowAttenuation walks the occluders between point and the light
func (l *PointLight) ShadowAttenuation(point core.Vec3, scene core.Intersector) core.Vec3 {
	distance := l.Position.Subtract(point).Length()
	return shadowWalk(point, l.Direction(point), l.Color(point), distance, scene)
}

func (l *PointLight) Color(point core.Vec3) core.Vec3 {
	return l.Intensity
}

func (l *PointLight) Direction(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}
