package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width    int
	Height   int
	Pixels   int   // Pixels written
	Samples  int64 // Primary rays traced
	Workers  int   // Goroutines used, 1 for TraceLines
	Tracer   tracer.Stats
	Duration time.Duration
}

// SamplesPerPixel returns the average number of primary rays per pixel
func (s RenderStats) SamplesPerPixel() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Samples) / float64(s.Pixels)
}

// RaysPerSecond returns the throughput over primary and secondary rays
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Tracer.Rays) / s.Duration.Seconds()
}
