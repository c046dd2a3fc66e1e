package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

var white = core.NewVec3(1, 1, 1)

// NewDiffuseSphereScene looks straight down on a matte sphere lit by a point light above it
func NewDiffuseSphereScene(aspect float64) *Scene {
	s := New(geometry.CameraConfig{
		Position:    core.NewVec3(0, 6, 0),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 0, -1),
		VFov:        30,
		AspectRatio: aspect,
	})

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, &core.Material{
		Diffuse: core.NewVec3(0.8, 0.3, 0.3),
		Index:   1.0,
	}))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 4, 0), white))
	return s
}

// NewMirrorScene places a shiny sphere on a mirror floor
func NewMirrorScene(aspect float64) *Scene {
	s := New(geometry.CameraConfig{
		Position:    core.NewVec3(0, 2, 7),
		LookAt:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        35,
		AspectRatio: aspect,
	})
	s.Hints = Hints{MaxDepth: 2}

	mirror := &core.Material{
		Diffuse:    core.NewVec3(0.05, 0.05, 0.05),
		Reflective: core.NewVec3(0.85, 0.85, 0.85),
		Index:      1.0,
	}
	red := &core.Material{
		Diffuse:   core.NewVec3(0.7, 0.15, 0.1),
		Specular:  core.NewVec3(0.6, 0.6, 0.6),
		Shininess: 0.4,
		Index:     1.0,
	}

	s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), mirror),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, red),
	)
	s.AddLight(
		lights.NewPointLight(core.NewVec3(3, 5, 4), white),
		lights.NewDirectionalLight(core.NewVec3(-1, -1, -1), core.NewVec3(0.3, 0.3, 0.3)),
	)
	return s
}

func checkerFloor(size float64) *geometry.Plane {
	light := &core.Material{Diffuse: core.NewVec3(0.9, 0.9, 0.9), Index: 1.0}
	dark := &core.Material{Diffuse: core.NewVec3(0.1, 0.1, 0.15), Index: 1.0}
	return geometry.NewCheckerPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), light, dark, size)
}

func glass(kt, index float64) *core.Material {
	return &core.Material{
		Specular:     core.NewVec3(0.8, 0.8, 0.8),
		Shininess:    0.8,
		Reflective:   core.NewVec3(0.1, 0.1, 0.1),
		Transmissive: core.NewVec3(kt, kt, kt),
		Index:        index,
	}
}

// NewGlassCheckerScene floats a glass sphere over a checkerboard
func NewGlassCheckerScene(aspect float64) *Scene {
	s := New(geometry.CameraConfig{
		Position:    core.NewVec3(0, 3, 6),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspect,
	})
	s.Hints = Hints{MaxDepth: 1}

	s.Add(
		checkerFloor(0.5),
		geometry.NewSphere(core.NewVec3(0, 1.2, 0), 1, glass(0.9, 1.5)),
	)
	s.AddLight(lights.NewPointLight(core.NewVec3(2, 6, 3), white))
	return s
}

// NewNestedBubbleScene nests an air bubble inside a glass ball inside a water drop
func NewNestedBubbleScene(aspect float64) *Scene {
	s := New(geometry.CameraConfig{
		Position:    core.NewVec3(0, 2.5, 6),
		LookAt:      core.NewVec3(0, 1.4, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspect,
	})
	s.Hints = Hints{MaxDepth: 2, Fresnel: true}

	center := core.NewVec3(0, 1.5, 0)
	s.Add(
		checkerFloor(0.4),
		geometry.NewSphere(center, 1.4, glass(0.95, 1.33)),
		geometry.NewSphere(center, 0.9, glass(0.9, 1.5)),
		geometry.NewSphere(center, 0.4, glass(1.0, 1.0)),
	)
	s.AddLight(
		lights.NewPointLight(core.NewVec3(-3, 6, 4), white),
		lights.NewDirectionalLight(core.NewVec3(0, -1, -0.5), core.NewVec3(0.2, 0.2, 0.2)),
	)
	return s
}

// NewSpotlightScene lights a few solids with a narrow spot light
func NewSpotlightScene(aspect float64) *Scene {
	s := New(geometry.CameraConfig{
		Position:    core.NewVec3(0, 4, 9),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspect,
	})
	s.Hints = Hints{MaxDepth: 1}

	floor := &core.Material{Diffuse: core.NewVec3(0.6, 0.6, 0.6), Index: 1.0}
	blue := &core.Material{Diffuse: core.NewVec3(0.2, 0.3, 0.8), Specular: core.NewVec3(0.4, 0.4, 0.4), Shininess: 0.25, Index: 1.0}
	amber := &core.Material{Diffuse: core.NewVec3(0.9, 0.6, 0.1), Index: 1.0}
	tinted := &core.Material{Diffuse: core.NewVec3(0.1, 0.3, 0.1), Transmissive: core.NewVec3(0.3, 0.8, 0.3), Index: 1.2}
	wall := &core.Material{Diffuse: core.NewVec3(0.5, 0.5, 0.45), Reflective: core.NewVec3(0.2, 0.2, 0.2), Index: 1.0}

	cone, err := geometry.NewCone(core.NewVec3(1.6, 0, 0), 1.8, 0.7, 0, true, amber)
	if err != nil {
		panic(err)
	}

	s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewBoxAt(core.NewVec3(-1.6, 0.6, 0), core.NewVec3(0.6, 0.6, 0.6), blue),
		geometry.NewBoxAt(core.NewVec3(0, 0.4, 1.2), core.NewVec3(0.4, 0.4, 0.4), tinted),
		cone,
		geometry.NewTriangle(core.NewVec3(-4, 0, -2), core.NewVec3(4, 0, -2), core.NewVec3(4, 4, -2), wall),
		geometry.NewTriangle(core.NewVec3(-4, 0, -2), core.NewVec3(4, 4, -2), core.NewVec3(-4, 4, -2), wall),
	)
	s.AddLight(
		lights.NewSpotLight(core.NewVec3(0, 6, 2), core.NewVec3(0, -1, -0.3), 28, core.NewVec3(1.2, 1.1, 1.0)),
		lights.NewDirectionalLight(core.NewVec3(1, -1, -1), core.NewVec3(0.15, 0.15, 0.2)),
	)
	return s
}

// NewTexturedScene shows spherical texture mapping over a gradient backdrop
func NewTexturedScene(aspect float64) *Scene {
	s := New(geometry.CameraConfig{
		Position:    core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        35,
		AspectRatio: aspect,
	})
	s.Hints = Hints{TextureMapping: true}
	s.Background = gradientImage(64, 64, core.NewVec3(0.1, 0.1, 0.2), core.NewVec3(0.5, 0.7, 1.0))
	s.Texture = stripeTexture(128, 64, 8, 4)

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1.2, core.NewDiffuseMaterial(white)))
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(0, 0, -1), white))
	return s
}

func toByte(c float64) uint8 {
	if c <= 0 {
		return 0
	}
	if c >= 1 {
		return 255
	}
	return uint8(255 * c)
}

// gradientImage blends from bottom to top
func gradientImage(width, height int, bottom, top core.Vec3) *tracer.Image {
	img := tracer.NewImage(width, height)
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		c := bottom.Multiply(1 - t).Add(top.Multiply(t))
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, toByte(c.X), toByte(c.Y), toByte(c.Z))
		}
	}
	return img
}

// stripeTexture draws a latitude/longitude checker with the given number of cells
func stripeTexture(width, height, columns, rows int) *tracer.Image {
	img := tracer.NewImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cx := x * columns / width
			cy := y * rows / height
			if (cx+cy)%2 == 0 {
				img.SetRGB(x, y, 230, 90, 40)
			} else {
				img.SetRGB(x, y, 240, 240, 220)
			}
		}
	}
	return img
}
