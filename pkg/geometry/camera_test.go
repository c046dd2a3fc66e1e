package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCamera_RayThrough(t *testing.T) {
	config := DefaultCameraConfig()
	config.VFov = 90
	camera := NewCamera(config)

	tests := []struct {
		name     string
		x, y     float64
		expected core.Vec3
	}{
		{"centre", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"top edge", 0.5, 1.0, core.NewVec3(0, 1, -1).Normalize()},
		{"bottom edge", 0.5, 0.0, core.NewVec3(0, -1, -1).Normalize()},
		{"right edge", 1.0, 0.5, core.NewVec3(1, 0, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.RayThrough(tt.x, tt.y)
			if !vecNear(ray.Direction, tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
			if !vecNear(ray.Origin, config.Position, 0) {
				t.Errorf("Expected origin %v, got %v", config.Position, ray.Origin)
			}
			if math.Abs(ray.Direction.Length()-1) > 1e-12 {
				t.Errorf("Expected unit direction, got length %f", ray.Direction.Length())
			}
		})
	}
}

func TestCamera_AspectRatio(t *testing.T) {
	config := DefaultCameraConfig()
	config.AspectRatio = 2
	config.VFov = 90
	camera := NewCamera(config)

	if camera.AspectRatio() != 2 {
		t.Errorf("Expected aspect 2, got %f", camera.AspectRatio())
	}
	ray := camera.RayThrough(1.0, 0.5)
	expected := core.NewVec3(2, 0, -1).Normalize()
	if !vecNear(ray.Direction, expected, 1e-9) {
		t.Errorf("Expected direction %v, got %v", expected, ray.Direction)
	}
}
