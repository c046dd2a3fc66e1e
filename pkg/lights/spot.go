package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SpotLight is a point light restricted to a cone around Orientation.
// Points outside the cone receive nothing; there is no soft edge.
type SpotLight struct {
	Position    core.Vec3
	Orientation core.Vec3 // Cone axis, pointing away from the light
	Angle       float64   // Half-angle of the cone in degrees
	Intensity   core.Vec3

	cosCutoff float64
}

// NewSpotLight creates a spot light with the given cone half-angle in degrees
func NewSpotLight(position, orientation core.Vec3, angle float64, intensity core.Vec3) *SpotLight {
	return &SpotLight{
		Position:    position,
		Orientation: orientation.Normalize(),
		Angle:       angle,
		Intensity:   intensity,
		cosCutoff:   math.Cos(angle * math.Pi / 180.0),
	}
}

func (l *SpotLight) Type() LightType {
	return LightTypeSpot
}

// DistanceAttenuation applies the constant/linear/quadratic falloff
func (l *SpotLight) DistanceAttenuation(point core.Vec3, coeffs core.Attenuation) float64 {
	return distanceFalloff(l.Position.Subtract(point).Length(), coeffs)
}

// ShadowAttenuation is black outside the cone, otherwise the point light shadow walk
func (l *SpotLight) ShadowAttenuation(point core.Vec3, scene core.Intersector) core.Vec3 {
	if !l.Illuminates(point) {
		return core.Vec3{}
	}
	distance := l.Position.Subtract(point).Length()
	return shadowWalk(point, l.Direction(point), l.Color(point), distance, scene)
}

// Illuminates reports whether point lies strictly inside the cone
func (l *SpotLight) Illuminates(point core.Vec3) bool {
	toPoint := point.Subtract(l.Position).Normalize()
	return toPoint.Dot(l.Orientation) > l.cosCutoff
}

func (l *SpotLight) Color(point core.Vec3) core.Vec3 {
	return l.Intensity
}

func (l *SpotLight) Direction(point core.Vec3) core.Vec3 {
	return l.Position.Subtract(point).Normalize()
}
