package core

// Material holds the Phong and optical coefficients of a surface.
// Colors are expected in [0,1] per channel.
type Material struct {
	Ambient      Vec3
	Diffuse      Vec3
	Specular     Vec3
	Emissive     Vec3
	Reflective   Vec3
	Transmissive Vec3
	Shininess    float64
	Index        float64 // only meaningful when Transmissive is non-zero
}

// NewDiffuseMaterial creates a matte material with no specular, reflective or transmissive terms
func NewDiffuseMaterial(diffuse Vec3) *Material {
	return &Material{Diffuse: diffuse, Index: 1.0}
}

// IsReflective reports whether the reflection branch applies
func (m *Material) IsReflective() bool {
	return !m.Reflective.IsZero()
}

// IsTransmissive reports whether the refraction branch applies
func (m *Material) IsTransmissive() bool {
	return !m.Transmissive.IsZero()
}
