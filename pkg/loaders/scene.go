package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var (
	// ErrUnknownShape is returned for object types the loader does not know
	ErrUnknownShape = errors.New("unknown shape type")

	// ErrUnknownLight is returned for light types the loader does not know
	ErrUnknownLight = errors.New("unknown light type")

	// ErrUnknownMaterial is returned when an object names a material that was not declared
	ErrUnknownMaterial = errors.New("unknown material")

	// ErrInvalidIndex is returned for a refractive index that is not positive
	ErrInvalidIndex = errors.New("invalid refractive index")
)

// Vec3 is a JSON triple
type Vec3 [3]float64

func (v Vec3) toCore() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type CameraCfg struct {
	Position    *Vec3   `json:"position,omitempty"`
	LookAt      *Vec3   `json:"lookAt,omitempty"`
	Up          *Vec3   `json:"up,omitempty"`
	Fov         float64 `json:"fov,omitempty"`
	AspectRatio float64 `json:"aspectRatio,omitempty"`
}

type HintsCfg struct {
	MaxDepth       int  `json:"maxDepth,omitempty"`
	Fresnel        bool `json:"fresnel,omitempty"`
	TextureMapping bool `json:"textureMapping,omitempty"`
}

type MaterialCfg struct {
	Ambient      Vec3     `json:"ambient"`
	Diffuse      Vec3     `json:"diffuse"`
	Specular     Vec3     `json:"specular"`
	Emissive     Vec3     `json:"emissive"`
	Reflective   Vec3     `json:"reflective"`
	Transmissive Vec3     `json:"transmissive"`
	Shininess    float64  `json:"shininess"`
	Index        *float64 `json:"index,omitempty"` // defaults to 1.0
}

type LightCfg struct {
	Type      string  `json:"type"` // directional, point or spot
	Position  Vec3    `json:"position"`
	Direction Vec3    `json:"direction"`
	Color     Vec3    `json:"color"`
	Angle     float64 `json:"angle,omitempty"` // spot cone half-angle in degrees
}

type ObjectCfg struct {
	Type     string `json:"type"` // sphere, box, plane, triangle or cone
	Material string `json:"material"`

	// sphere
	Center Vec3    `json:"center"`
	Radius float64 `json:"radius"`

	// box
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`

	// plane
	Point       Vec3    `json:"point"`
	Normal      Vec3    `json:"normal"`
	Checker     string  `json:"checker,omitempty"`
	CheckerSize float64 `json:"checkerSize,omitempty"`

	// triangle
	Vertices [3]Vec3 `json:"vertices"`

	// cone
	Base         Vec3    `json:"base"`
	Height       float64 `json:"height"`
	BottomRadius float64 `json:"bottomRadius"`
	TopRadius    float64 `json:"topRadius"`
	Capped       bool    `json:"capped"`
}

// SceneCfg is the JSON scene file layout
type SceneCfg struct {
	Camera    CameraCfg              `json:"camera"`
	Hints     HintsCfg               `json:"hints"`
	Materials map[string]MaterialCfg `json:"materials"`
	Lights    []LightCfg             `json:"lights"`
	Objects   []ObjectCfg            `json:"objects"`
}

// LoadScene reads a JSON scene file
func LoadScene(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	return ParseScene(f)
}

// ParseScene decodes and builds a scene. Nothing is returned unless every
// material, light and object is valid.
func ParseScene(r io.Reader) (*scene.Scene, error) {
	var cfg SceneCfg
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return BuildScene(cfg)
}

// BuildScene turns a decoded configuration into a scene
func BuildScene(cfg SceneCfg) (*scene.Scene, error) {
	cameraConfig := geometry.DefaultCameraConfig()
	if cfg.Camera.Position != nil {
		cameraConfig.Position = cfg.Camera.Position.toCore()
	}
	if cfg.Camera.LookAt != nil {
		cameraConfig.LookAt = cfg.Camera.LookAt.toCore()
	}
	if cfg.Camera.Up != nil {
		cameraConfig.Up = cfg.Camera.Up.toCore()
	}
	if cfg.Camera.Fov > 0 {
		cameraConfig.VFov = cfg.Camera.Fov
	}
	if cfg.Camera.AspectRatio > 0 {
		cameraConfig.AspectRatio = cfg.Camera.AspectRatio
	}
	if cameraConfig.LookAt.Subtract(cameraConfig.Position).IsZero() {
		return nil, fmt.Errorf("camera position and lookAt coincide")
	}

	s := scene.New(cameraConfig)
	s.Hints = scene.Hints{
		MaxDepth:       cfg.Hints.MaxDepth,
		Fresnel:        cfg.Hints.Fresnel,
		TextureMapping: cfg.Hints.TextureMapping,
	}

	materials := make(map[string]*core.Material, len(cfg.Materials))
	for name, m := range cfg.Materials {
		mat, err := buildMaterial(m)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for i, l := range cfg.Lights {
		light, err := buildLight(l)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(light)
	}

	for i, o := range cfg.Objects {
		shape, err := buildObject(o, materials)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(shape)
	}

	return s, nil
}

func buildMaterial(m MaterialCfg) (*core.Material, error) {
	index := 1.0
	if m.Index != nil {
		index = *m.Index
	}
	if index <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidIndex, index)
	}
	return &core.Material{
		Ambient:      m.Ambient.toCore(),
		Diffuse:      m.Diffuse.toCore(),
		Specular:     m.Specular.toCore(),
		Emissive:     m.Emissive.toCore(),
		Reflective:   m.Reflective.toCore(),
		Transmissive: m.Transmissive.toCore(),
		Shininess:    m.Shininess,
		Index:        index,
	}, nil
}

func buildLight(l LightCfg) (core.Light, error) {
	switch lights.LightType(l.Type) {
	case lights.LightTypeDirectional:
		if l.Direction.toCore().IsZero() {
			return nil, fmt.Errorf("directional light needs a direction")
		}
		return lights.NewDirectionalLight(l.Direction.toCore(), l.Color.toCore()), nil
	case lights.LightTypePoint:
		return lights.NewPointLight(l.Position.toCore(), l.Color.toCore()), nil
	case lights.LightTypeSpot:
		if l.Direction.toCore().IsZero() {
			return nil, fmt.Errorf("spot light needs a direction")
		}
		if l.Angle <= 0 || l.Angle >= 180 {
			return nil, fmt.Errorf("spot light angle %f out of range (0, 180)", l.Angle)
		}
		return lights.NewSpotLight(l.Position.toCore(), l.Direction.toCore(), l.Angle, l.Color.toCore()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLight, l.Type)
	}
}

func lookupMaterial(name string, materials map[string]*core.Material) (*core.Material, error) {
	m, ok := materials[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

func buildObject(o ObjectCfg, materials map[string]*core.Material) (core.Shape, error) {
	material, err := lookupMaterial(o.Material, materials)
	if err != nil {
		return nil, err
	}

	switch o.Type {
	case "sphere":
		if o.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive, got %f", o.Radius)
		}
		return geometry.NewSphere(o.Center.toCore(), o.Radius, material), nil
	case "box":
		return geometry.NewBox(o.Min.toCore(), o.Max.toCore(), material), nil
	case "plane":
		if o.Normal.toCore().IsZero() {
			return nil, fmt.Errorf("plane needs a normal")
		}
		if o.Checker == "" {
			return geometry.NewPlane(o.Point.toCore(), o.Normal.toCore(), material), nil
		}
		checker, err := lookupMaterial(o.Checker, materials)
		if err != nil {
			return nil, err
		}
		size := o.CheckerSize
		if size <= 0 {
			size = 1
		}
		return geometry.NewCheckerPlane(o.Point.toCore(), o.Normal.toCore(), material, checker, size), nil
	case "triangle":
		v := o.Vertices
		return geometry.NewTriangle(v[0].toCore(), v[1].toCore(), v[2].toCore(), material), nil
	case "cone":
		return geometry.NewCone(o.Base.toCore(), o.Height, o.BottomRadius, o.TopRadius, o.Capped, material)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, o.Type)
	}
}
