package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
	LightTypeSpot        LightType = "spot"
)

// Light extends core.Light with a type tag used by loaders and statistics
type Light interface {
	core.Light
	Type() LightType
}

var (
	_ Light = (*DirectionalLight)(nil)
	_ Light = (*PointLight)(nil)
	_ Light = (*SpotLight)(nil)
)
