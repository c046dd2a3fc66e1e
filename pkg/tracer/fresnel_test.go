package tracer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestSchlick(t *testing.T) {
	tests := []struct {
		name     string
		indexA   float64
		indexB   float64
		cosI     float64
		expected float64
	}{
		{"equal indices", 1.5, 1.5, 0.3, 0},
		{"equal vacuum", 1.0, 1.0, 1.0, 0},
		{"normal incidence into glass", 1.0, 1.5, 1.0, 0.04},
		{"grazing into glass", 1.0, 1.5, 0.0, 1.0},
		{"normal incidence out of glass", 1.5, 1.0, 1.0, 0.04},
		{"total internal reflection", 1.5, 1.0, 0.2, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Schlick(tt.indexA, tt.indexB, tt.cosI)
			if math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestSchlick_TotalInternalReflectionIsExact(t *testing.T) {
	// sinI = 0.8, sinT = 1.2
	if got := Schlick(1.5, 1.0, 0.6); got != 1.0 {
		t.Errorf("Expected exactly 1.0, got %v", got)
	}
}

func TestSchlick_IncreasesTowardsGrazing(t *testing.T) {
	previous := Schlick(1.0, 1.5, 1.0)
	for _, cosI := range []float64{0.8, 0.6, 0.4, 0.2, 0.0} {
		got := Schlick(1.0, 1.5, cosI)
		if got <= previous {
			t.Errorf("Expected reflectance to grow as cosI drops to %f, got %f after %f", cosI, got, previous)
		}
		previous = got
	}
}

func TestTracer_FresnelLeavesStackUntouched(t *testing.T) {
	config := DefaultConfig()
	config.Fresnel = true
	tracer := New(&MockScene{}, config)
	outer := &core.Material{Index: 1.2}
	tracer.media.Insert(1, outer)

	hit := &core.HitRecord{
		Normal:      core.NewVec3(0, 1, 0),
		Material:    &core.Material{Transmissive: core.NewVec3(1, 1, 1), Index: 1.5},
		ObjectID:    2,
		HasInterior: true,
	}

	tracer.fresnel(hit, core.NewVec3(0, -1, 0))
	if !equalIDs(stackIDs(tracer.media), []int{1}) {
		t.Errorf("Expected stack [1] after fresnel, got %v", stackIDs(tracer.media))
	}

	config.Fresnel = false
	disabled := New(&MockScene{}, config)
	if got := disabled.fresnel(hit, core.NewVec3(0, -1, 0)); got != 1.0 {
		t.Errorf("Expected 1.0 with Fresnel disabled, got %f", got)
	}
}
