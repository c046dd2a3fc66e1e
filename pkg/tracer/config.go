package tracer

import "github.com/df07/go-whitted-raytracer/pkg/core"

// DefaultRecursionCeiling caps the call level of a single primary ray
const DefaultRecursionCeiling = 64

// Config holds the optical settings read by every trace call
type Config struct {
	MaxDepth       int              `json:"maxDepth"`       // Reflection budget of a primary ray
	Fresnel        bool             `json:"fresnel"`        // Scale transmission by 1 - reflectance
	TextureMapping bool             `json:"textureMapping"` // Replace shading with a spherical texture lookup
	AmbientLight   float64          `json:"ambientLight"`   // Global ambient light scalar
	Attenuation    core.Attenuation `json:"attenuation"`    // Point/spot light distance falloff

	// RecursionCeiling bounds the call level independently of the depth budget,
	// since refraction grows the budget. Zero means DefaultRecursionCeiling.
	RecursionCeiling int `json:"recursionCeiling"`

	// SymmetricRefractionDepth makes refraction consume depth like reflection does
	SymmetricRefractionDepth bool `json:"symmetricRefractionDepth"`
}

// DefaultConfig returns the classic settings: no recursion, no Fresnel, ambient 0.2
func DefaultConfig() Config {
	return Config{
		MaxDepth:     0,
		AmbientLight: 0.20,
		Attenuation: core.Attenuation{
			Constant:  0.25,
			Linear:    0.25,
			Quadratic: 0.50,
		},
		RecursionCeiling: DefaultRecursionCeiling,
	}
}

func (c Config) ceiling() int {
	if c.RecursionCeiling <= 0 {
		return DefaultRecursionCeiling
	}
	return c.RecursionCeiling
}
