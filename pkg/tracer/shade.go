package tracer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Shade evaluates the Phong model at hit: emissive and ambient terms plus, for every
// light, attenuated diffuse and specular terms. The result is not clamped.
// Materials without an ambient coefficient reflect ambient light with their diffuse color.
func (t *Tracer) Shade(ray core.Ray, hit *core.HitRecord) core.Vec3 {
	m := hit.Material
	if m == nil {
		return core.Vec3{}
	}

	ambient := m.Ambient
	if ambient.IsZero() {
		ambient = m.Diffuse
	}
	color := m.Emissive.Add(ambient.Multiply(t.config.AmbientLight))

	point := hit.Point
	normal := hit.Normal
	view := ray.Direction.Normalize().Negate()

	for _, light := range t.scene.Lights() {
		toLight := light.Direction(point)
		attenuation := light.ShadowAttenuation(point, t.scene).
			Multiply(light.DistanceAttenuation(point, t.config.Attenuation))
		if attenuation.IsZero() {
			continue
		}

		diffuse := m.Diffuse.Multiply(math.Max(0, normal.Dot(toLight)))

		mirrored := toLight.Negate().Reflect(normal).Normalize()
		highlight := math.Pow(math.Max(0, mirrored.Dot(view)), m.Shininess*128)
		specular := m.Specular.Multiply(highlight)

		color = color.Add(attenuation.MultiplyVec(diffuse.Add(specular)))
	}

	return color
}
