package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

// Raytracer drives the per-pixel sampling and owns the pixel buffer.
// The buffer holds width*height*3 bytes, row 0 at the bottom.
type Raytracer struct {
	config Config
	logger core.Logger

	scene      *scene.Scene
	background *tracer.Image // loaded by the caller; overrides the scene's own
	texture    *tracer.Image

	tracer *tracer.Tracer // used by TracePixel and TraceLines
	random *rand.Rand

	buffer []byte
	width  int
	height int

	stats RenderStats
}

// NewRaytracer creates a driver with an empty 256x256 buffer and no scene
func NewRaytracer(config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt := &Raytracer{
		config: config,
		logger: logger,
		random: rand.New(rand.NewSource(config.Seed)),
		width:  DefaultWidth,
		height: DefaultWidth,
	}
	rt.buffer = make([]byte, rt.width*rt.height*3)
	return rt
}

// Config returns the render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// SetConfig replaces the render configuration
func (rt *Raytracer) SetConfig(config Config) {
	rt.config = config
	rt.random = rand.New(rand.NewSource(config.Seed))
	rt.tracer = rt.newTracer()
}

// Scene returns the current scene, nil if none was set
func (rt *Raytracer) Scene() *scene.Scene {
	return rt.scene
}

// SetScene prepares s and makes it the scene to render
func (rt *Raytracer) SetScene(s *scene.Scene) {
	s.Prepare()
	rt.scene = s
	rt.tracer = rt.newTracer()

	stats := s.Stats()
	rt.logger.Infof("scene ready: %d shapes (%d in BVH of depth %d, %d unbounded), %d lights",
		stats.Shapes, stats.Bounded, stats.BVHDepth, stats.Unbounded, stats.Lights)
}

// LoadScene reads a scene file and sizes the buffer to its aspect ratio.
// On failure the current scene is kept.
func (rt *Raytracer) LoadScene(path string) error {
	s, err := loaders.LoadScene(path)
	if err != nil {
		return fmt.Errorf("failed to load scene %s: %w", path, err)
	}

	rt.SetScene(s)
	width, height := BufferSize(DefaultWidth, s.Camera.AspectRatio())
	return rt.Setup(width, height)
}

// LoadBackgroundImage replaces the background image. On failure the previous one is kept.
func (rt *Raytracer) LoadBackgroundImage(path string) error {
	img, err := loaders.LoadImage(path)
	if err != nil {
		return fmt.Errorf("failed to load background image: %w", err)
	}
	rt.background = img
	rt.tracer = rt.newTracer()
	rt.logger.Infof("background image %s: %dx%d", path, img.Width, img.Height)
	return nil
}

// LoadTextureImage replaces the texture image. On failure the previous one is kept.
func (rt *Raytracer) LoadTextureImage(path string) error {
	img, err := loaders.LoadImage(path)
	if err != nil {
		return fmt.Errorf("failed to load texture image: %w", err)
	}
	rt.texture = img
	rt.tracer = rt.newTracer()
	rt.logger.Infof("texture image %s: %dx%d", path, img.Width, img.Height)
	return nil
}

// BufferSize returns the buffer dimensions for a width and camera aspect ratio
func BufferSize(width int, aspect float64) (int, int) {
	if aspect <= 0 {
		aspect = 1
	}
	height := int(float64(width)/aspect + 0.5)
	if height < 1 {
		height = 1
	}
	return width, height
}

// Setup resizes the buffer when the dimensions change and clears it
func (rt *Raytracer) Setup(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	if width != rt.width || height != rt.height {
		rt.width = width
		rt.height = height
		rt.buffer = make([]byte, width*height*3)
		return nil
	}
	clear(rt.buffer)
	return nil
}

// Buffer exposes the pixel buffer read-only with its dimensions
func (rt *Raytracer) Buffer() ([]byte, int, int) {
	return rt.buffer, rt.width, rt.height
}

// Stats returns the statistics of the last TraceLines or Render call
func (rt *Raytracer) Stats() RenderStats {
	return rt.stats
}

// newTracer builds a tracer for the current scene, or nil without one.
// Images loaded by the caller win over the scene's built-in ones.
func (rt *Raytracer) newTracer() *tracer.Tracer {
	if rt.scene == nil {
		return nil
	}
	tr := tracer.New(rt.scene, rt.config.Config)

	background, texture := rt.scene.Background, rt.scene.Texture
	if rt.background != nil {
		background = rt.background
	}
	if rt.texture != nil {
		texture = rt.texture
	}
	tr.SetBackground(background)
	tr.SetTexture(texture)
	return tr
}

// TracePixel samples pixel (x, y) and stores the quantized average in the buffer.
// It does nothing without a scene or outside the buffer.
func (rt *Raytracer) TracePixel(x, y int) {
	if rt.tracer == nil || x < 0 || y < 0 || x >= rt.width || y >= rt.height {
		return
	}
	rt.tracePixel(rt.tracer, rt.random, x, y)
}

// tracePixel is shared by TracePixel and the render workers; each caller passes its own
// tracer and random source.
func (rt *Raytracer) tracePixel(tr *tracer.Tracer, random *rand.Rand, x, y int) int {
	camera := rt.scene.Camera
	w := float64(rt.width)
	h := float64(rt.height)

	sample := func(px, py float64) core.Vec3 {
		sx, sy := px/w, py/h
		return tr.Trace(camera.RayThrough(sx, sy), sx, sy)
	}

	var color core.Vec3
	samples := 1

	switch grid := rt.config.AntialiasGrid; {
	case rt.config.Jitter:
		color = sample(float64(x)+random.Float64()-0.5, float64(y)+random.Float64()-0.5)
	case grid > 0:
		step := 1.0 / float64(grid)
		for m := 0; m <= grid; m++ {
			for n := 0; n <= grid; n++ {
				color = color.Add(sample(float64(x)-0.5+float64(m)*step, float64(y)-0.5+float64(n)*step))
			}
		}
		samples = (grid + 1) * (grid + 1)
		color = color.Multiply(1.0 / float64(samples))
	default:
		color = sample(float64(x), float64(y))
	}

	pixel := rt.buffer[(x+y*rt.width)*3:]
	pixel[0] = uint8(255.0 * color.X)
	pixel[1] = uint8(255.0 * color.Y)
	pixel[2] = uint8(255.0 * color.Z)
	return samples
}

// TraceLines traces rows [start, stop) on the calling goroutine
func (rt *Raytracer) TraceLines(start, stop int) {
	if rt.tracer == nil {
		return
	}
	if stop > rt.height {
		stop = rt.height
	}
	if start < 0 {
		start = 0
	}

	began := time.Now()
	rt.tracer.ResetStats()
	stats := RenderStats{Width: rt.width, Height: rt.height, Workers: 1}

	for y := start; y < stop; y++ {
		for x := 0; x < rt.width; x++ {
			stats.Samples += int64(rt.tracePixel(rt.tracer, rt.random, x, y))
			stats.Pixels++
		}
	}

	stats.Tracer = rt.tracer.Stats()
	stats.Duration = time.Since(began)
	rt.stats = stats
}

// Render traces the whole buffer with a pool of workers, each owning its own tracer.
// It stops handing out rows once ctx is done and then returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) error {
	if rt.scene == nil {
		return ErrNoScene
	}

	began := time.Now()
	pool := NewWorkerPool(rt, rt.config.Workers)
	pool.Start()
	rt.logger.Infof("rendering %dx%d with %d workers, %d samples per pixel",
		rt.width, rt.height, pool.GetNumWorkers(), rt.config.SamplesPerPixel())

	go func() {
		defer pool.Stop()
		for row := 0; row < rt.height; row++ {
			select {
			case <-ctx.Done():
				return
			case pool.taskQueue <- RowTask{Row: row}:
			}
		}
	}()

	stats := RenderStats{Width: rt.width, Height: rt.height, Workers: pool.GetNumWorkers()}
	reported := 0

	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.Pixels += result.Pixels
		stats.Samples += result.Samples
		stats.Tracer.Add(result.Stats)

		if done := 10 * stats.Pixels / (rt.width * rt.height); done > reported {
			reported = done
			rt.logger.Debugf("%d%% of rows done", done*10)
		}
	}

	stats.Duration = time.Since(began)
	rt.stats = stats

	if err := ctx.Err(); err != nil {
		rt.logger.Warningf("render cancelled after %d of %d pixels", stats.Pixels, rt.width*rt.height)
		return err
	}

	rt.logger.Infof("rendered %d pixels in %v (%d rays)", stats.Pixels, stats.Duration, stats.Tracer.Rays)
	return nil
}
