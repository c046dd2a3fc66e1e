package tracer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// MockScene intersects its shapes linearly and numbers them in insertion order
type MockScene struct {
	shapes []core.Shape
	lights []core.Light
}

func newMockScene(lights []core.Light, shapes ...core.Shape) *MockScene {
	for i, shape := range shapes {
		shape.SetID(i + 1)
	}
	return &MockScene{shapes: shapes, lights: lights}
}

func (s *MockScene) Intersect(ray core.Ray) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	tMax := math.Inf(1)
	for _, shape := range s.shapes {
		if hit, ok := shape.Hit(ray, core.RayEpsilon, tMax); ok {
			closest, tMax = hit, hit.T
		}
	}
	return closest, closest != nil
}

func (s *MockScene) Lights() []core.Light {
	return s.lights
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func whiteBackground() *Image {
	img := NewImage(2, 2)
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func glassMaterial(kt float64, index float64) *core.Material {
	return &core.Material{Transmissive: core.NewVec3(kt, kt, kt), Index: index}
}

func emissiveMaterial(c core.Vec3) *core.Material {
	return &core.Material{Emissive: c, Index: 1.0}
}

func TestTracer_MissAtTopLevel(t *testing.T) {
	down := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name       string
		background *Image
		maxDepth   int
		expected   core.Vec3
	}{
		{"no background", nil, 0, core.Vec3{}},
		{"background depth 0", whiteBackground(), 0, core.NewVec3(1, 1, 1)},
		{"background depth 5", whiteBackground(), 5, core.NewVec3(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.MaxDepth = tt.maxDepth
			tracer := New(newMockScene(nil), config)
			tracer.SetBackground(tt.background)

			got := tracer.Trace(down, 0.5, 0.5)
			if !vecNear(got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTracer_MissAfterBounceIsBlack(t *testing.T) {
	mirror := &core.Material{Reflective: core.NewVec3(1, 1, 1), Index: 1.0}
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mirror)

	config := DefaultConfig()
	config.MaxDepth = 3
	config.AmbientLight = 0
	tracer := New(newMockScene(nil, sphere), config)
	tracer.SetBackground(whiteBackground())

	got := tracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.5, 0.5)
	if !got.IsZero() {
		t.Errorf("Expected the reflected miss to be black, got %v", got)
	}
	if tracer.Stats().Reflections != 1 {
		t.Errorf("Expected 1 reflection, got %d", tracer.Stats().Reflections)
	}
}

func TestTracer_OpaqueAtDepthZeroEqualsShade(t *testing.T) {
	material := &core.Material{
		Diffuse:   core.NewVec3(0.7, 0.3, 0.2),
		Specular:  core.NewVec3(0.5, 0.5, 0.5),
		Shininess: 0.3,
		Index:     1.0,
	}
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material)
	light := lights.NewPointLight(core.NewVec3(2, 3, 0), core.NewVec3(1, 1, 1))
	scene := newMockScene([]core.Light{light}, sphere)

	tracer := New(scene, DefaultConfig())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.1, 0.05, -1).Normalize())

	hit, ok := scene.Intersect(ray)
	if !ok {
		t.Fatal("Expected the ray to hit the sphere")
	}
	expected := tracer.Shade(ray, hit).Clamp(0, 1)
	got := tracer.Trace(ray, 0.5, 0.5)

	if !vecNear(got, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if tracer.Stats().Rays != 1 {
		t.Errorf("Expected no recursive rays, got %d rays", tracer.Stats().Rays)
	}
}

func TestTracer_ShadeIsUnclamped(t *testing.T) {
	material := &core.Material{Emissive: core.NewVec3(0.8, 0.8, 0.8), Diffuse: core.NewVec3(1, 1, 1), Index: 1.0}
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material)
	light := lights.NewDirectionalLight(core.NewVec3(0, 0, -1), core.NewVec3(1, 1, 1))
	scene := newMockScene([]core.Light{light}, sphere)

	tracer := New(scene, DefaultConfig())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	hit, _ := scene.Intersect(ray)

	// 0.8 emissive + 0.2 ambient + 1.0 diffuse
	shaded := tracer.Shade(ray, hit)
	if math.Abs(shaded.X-2.0) > 1e-12 {
		t.Errorf("Expected unclamped 2.0, got %f", shaded.X)
	}
	if got := tracer.Trace(ray, 0.5, 0.5); !vecNear(got, core.NewVec3(1, 1, 1), 0) {
		t.Errorf("Expected the primary result clamped to 1, got %v", got)
	}
}

func TestTracer_AmbientUsesAmbientCoefficient(t *testing.T) {
	tests := []struct {
		name     string
		material *core.Material
		expected core.Vec3
	}{
		{"diffuse fallback", &core.Material{Diffuse: core.NewVec3(0.5, 0.25, 1)}, core.NewVec3(0.1, 0.05, 0.2)},
		{"explicit ambient", &core.Material{Diffuse: core.NewVec3(0.5, 0.25, 1), Ambient: core.NewVec3(1, 0, 0)}, core.NewVec3(0.2, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer := New(newMockScene(nil), DefaultConfig())
			hit := &core.HitRecord{T: 1, Normal: core.NewVec3(0, 0, 1), Material: tt.material}
			got := tracer.Shade(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)), hit)
			if !vecNear(got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTracer_MirrorShowsSphere(t *testing.T) {
	sphereMaterial := &core.Material{Diffuse: core.NewVec3(0.5, 0.2, 0.1), Emissive: core.NewVec3(0.1, 0.3, 0.2), Index: 1.0}
	mirrorMaterial := &core.Material{Reflective: core.NewVec3(0.9, 0.9, 0.9), Index: 1.0}

	sphere := geometry.NewSphere(core.NewVec3(0, 1, -5), 1, sphereMaterial)
	mirror := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), mirrorMaterial)
	scene := newMockScene(nil, sphere, mirror)

	config := DefaultConfig()
	config.MaxDepth = 2
	tracer := New(scene, config)

	eye := core.NewVec3(0, 1, 0)
	direct := tracer.Trace(core.NewRay(eye, core.NewVec3(0, 0, -1)), 0.5, 0.5)
	reflected := tracer.Trace(core.NewRay(eye, core.NewVec3(0, -1, -2.5).Normalize()), 0.5, 0.3)

	expected := direct.Multiply(0.9)
	if !vecNear(reflected, expected, 1e-9) {
		t.Errorf("Expected reflection %v, got %v", expected, reflected)
	}
}

// glassOverFloor places a glass sphere of radius 1 above an emissive floor
func glassOverFloor(kt float64, floor *geometry.Plane) *MockScene {
	glass := geometry.NewSphere(core.NewVec3(0, 2, 0), 1, glassMaterial(kt, 1.5))
	return newMockScene(nil, glass, floor)
}

func TestTracer_GlassOverChecker(t *testing.T) {
	white := emissiveMaterial(core.NewVec3(1, 1, 1))
	black := emissiveMaterial(core.Vec3{})
	// The ray lands in the middle of a white square
	checker := geometry.NewCheckerPlane(core.NewVec3(-2, 0, -2), core.NewVec3(0, 1, 0), white, black, 4)

	down := core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0))

	tests := []struct {
		name     string
		fresnel  bool
		expected float64
	}{
		{"without fresnel", false, 0.8 * 0.8},
		{"with fresnel", true, 0.8 * 0.8 * 0.96 * 0.96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Fresnel = tt.fresnel
			tracer := New(glassOverFloor(0.8, checker), config)

			got := tracer.Trace(down, 0.5, 0.5)
			if !vecNear(got, core.NewVec3(tt.expected, tt.expected, tt.expected), 1e-6) {
				t.Errorf("Expected %f, got %v", tt.expected, got)
			}
			if tracer.Stats().Refractions != 2 {
				t.Errorf("Expected 2 refractions, got %d", tracer.Stats().Refractions)
			}
			if tracer.Media().Len() != 0 {
				t.Errorf("Expected empty medium stack, got %d entries", tracer.Media().Len())
			}
		})
	}
}

func TestTracer_FresnelDimsGrazingTransmission(t *testing.T) {
	floor := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), emissiveMaterial(core.NewVec3(1, 1, 1)))
	grazing := core.NewRay(core.NewVec3(0.95, 10, 0), core.NewVec3(0, -1, 0))

	config := DefaultConfig()
	plain := New(glassOverFloor(1.0, floor), config).Trace(grazing, 0.5, 0.5)

	config.Fresnel = true
	dimmed := New(glassOverFloor(1.0, floor), config).Trace(grazing, 0.5, 0.5)

	if plain.X <= 0 {
		t.Fatalf("Expected the floor to be visible through the glass, got %v", plain)
	}
	if dimmed.X >= plain.X {
		t.Errorf("Expected Fresnel to reduce transmission: %f >= %f", dimmed.X, plain.X)
	}
}

func TestTracer_RefractionDepth(t *testing.T) {
	floor := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), emissiveMaterial(core.NewVec3(1, 1, 1)))
	down := core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0))

	tests := []struct {
		name      string
		symmetric bool
		maxDepth  int
		expected  float64
	}{
		{"growing depth at zero budget", false, 0, 0.25},
		{"symmetric depth at zero budget", true, 0, 0},
		{"symmetric depth with budget", true, 2, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.MaxDepth = tt.maxDepth
			config.SymmetricRefractionDepth = tt.symmetric
			got := New(glassOverFloor(0.5, floor), config).Trace(down, 0.5, 0.5)
			if math.Abs(got.X-tt.expected) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.expected, got.X)
			}
		})
	}
}

func TestTracer_NestedDielectricsLeaveStackEmpty(t *testing.T) {
	shell := geometry.NewSphere(core.NewVec3(0, 0, -6), 3, glassMaterial(0.9, 1.5))
	water := geometry.NewSphere(core.NewVec3(0, 0, -6), 2, glassMaterial(0.9, 1.33))
	bubble := geometry.NewSphere(core.NewVec3(0, 0, -6), 1, glassMaterial(0.9, 1.0))
	scene := newMockScene(nil, shell, water, bubble)

	config := DefaultConfig()
	config.MaxDepth = 4
	config.Fresnel = true
	tracer := New(scene, config)

	for _, x := range []float64{0, 0.1, 0.3, 0.5, 0.7} {
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(x, 0.05, -1).Normalize())
		tracer.Trace(ray, 0.5, 0.5)
		if tracer.Media().Len() != 0 {
			t.Fatalf("Expected empty medium stack after x=%f, got %v", x, stackIDs(tracer.Media()))
		}
	}
	if tracer.Stats().Refractions < 6 {
		t.Errorf("Expected rays to pass through all three shells, got %d refractions", tracer.Stats().Refractions)
	}
}

func TestTracer_TotalInternalReflection(t *testing.T) {
	box := geometry.NewBox(core.NewVec3(-1, -5, -1), core.NewVec3(1, 1, 1), glassMaterial(1, 1.5))
	tracer := New(newMockScene(nil, box), DefaultConfig())

	ray := core.NewRay(core.NewVec3(-1.5, 2, 0), core.NewVec3(1, -1, 0).Normalize())
	tracer.Trace(ray, 0.5, 0.5)

	stats := tracer.Stats()
	if stats.TotalInternalReflections != 1 {
		t.Errorf("Expected 1 total internal reflection, got %d", stats.TotalInternalReflections)
	}
	if stats.Refractions != 1 {
		t.Errorf("Expected only the entering refraction, got %d", stats.Refractions)
	}
	if tracer.Media().Len() != 0 {
		t.Errorf("Expected empty medium stack, got %d entries", tracer.Media().Len())
	}
}

func TestTracer_RecursionCeiling(t *testing.T) {
	mirror := &core.Material{Reflective: core.NewVec3(0.5, 0.5, 0.5), Index: 1.0}
	front := geometry.NewPlane(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), mirror)
	back := geometry.NewPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), mirror)

	config := DefaultConfig()
	config.MaxDepth = 1000
	config.RecursionCeiling = 10
	tracer := New(newMockScene(nil, front, back), config)

	tracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.5, 0.5)

	stats := tracer.Stats()
	if stats.CeilingHits != 1 {
		t.Errorf("Expected 1 ceiling hit, got %d", stats.CeilingHits)
	}
	if stats.MaxLevel != 11 {
		t.Errorf("Expected max level 11, got %d", stats.MaxLevel)
	}
}

func TestTracer_TextureMapping(t *testing.T) {
	texture := NewImage(4, 2)
	texture.SetRGB(3, 0, 0, 255, 255)
	texture.SetRGB(3, 1, 0, 255, 255)

	material := &core.Material{Diffuse: core.NewVec3(1, 0, 0), Reflective: core.NewVec3(1, 1, 1), Index: 1.0}
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material)
	light := lights.NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))

	config := DefaultConfig()
	config.TextureMapping = true
	config.MaxDepth = 3
	tracer := New(newMockScene([]core.Light{light}, sphere), config)
	tracer.SetTexture(texture)

	// Hits the sphere where the normal faces +z: u = 0.75, v = 0.5
	got := tracer.Trace(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0.5, 0.5)
	if !vecNear(got, core.NewVec3(0, 1, 1), 1e-12) {
		t.Errorf("Expected the texel color, got %v", got)
	}
	if tracer.Stats().Reflections != 0 {
		t.Errorf("Expected texture mode to skip reflection, got %d", tracer.Stats().Reflections)
	}
}

func TestStats_Add(t *testing.T) {
	total := Stats{Rays: 3, MaxLevel: 2}
	total.Add(Stats{Rays: 4, Refractions: 1, MaxLevel: 5})
	total.Add(Stats{Rays: 1, MaxLevel: 1})

	if total.Rays != 8 || total.Refractions != 1 || total.MaxLevel != 5 {
		t.Errorf("Unexpected totals %+v", total)
	}
}
