package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// DirectionalLight is infinitely far away and shines along Orientation
type DirectionalLight struct {
	Orientation core.Vec3 // Direction the light travels
	Intensity   core.Vec3
}

// NewDirectionalLight creates a directional light
func NewDirectionalLight(orientation, intensity core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		Orientation: orientation.Normalize(),
		Intensity:   intensity,
	}
}

func (l *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// DistanceAttenuation is always 1: the light is infinitely far away
func (l *DirectionalLight) DistanceAttenuation(point core.Vec3, coeffs core.Attenuation) float64 {
	return 1.0
}

// ShadowAttenuation walks every occluder between point and infinity
func (l *DirectionalLight) ShadowAttenuation(point core.Vec3, scene core.Intersector) core.Vec3 {
	return shadowWalk(point, l.Direction(point), l.Color(point), infiniteDistance, scene)
}

func (l *DirectionalLight) Color(point core.Vec3) core.Vec3 {
	return l.Intensity
}

func (l *DirectionalLight) Direction(point core.Vec3) core.Vec3 {
	return l.Orientation.Negate()
}
