package tracer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tracer is the recursive Whitted kernel. It owns a MediumStack, so a Tracer
// must not be shared between goroutines; create one per worker instead.
type Tracer struct {
	scene  core.Scene
	config Config

	background *Image
	texture    *Image

	media *MediumStack
	stats Stats

	// screen position of the current primary ray, used for background lookups
	screenX, screenY float64
}

// New creates a tracer for the scene
func New(scene core.Scene, config Config) *Tracer {
	return &Tracer{
		scene:  scene,
		config: config,
		media:  NewMediumStack(),
	}
}

// SetBackground sets the image shown behind primary rays that miss; nil shows black
func (t *Tracer) SetBackground(img *Image) {
	t.background = img
}

// SetTexture sets the image used in texture mapping mode; nil maps to black
func (t *Tracer) SetTexture(img *Image) {
	t.texture = img
}

// Config returns the tracer's settings
func (t *Tracer) Config() Config {
	return t.config
}

// Media exposes the tracer's medium stack
func (t *Tracer) Media() *MediumStack {
	return t.media
}

// Stats returns the counters accumulated since the last ResetStats
func (t *Tracer) Stats() Stats {
	return t.stats
}

// ResetStats zeroes the counters
func (t *Tracer) ResetStats() {
	t.stats = Stats{}
}

// Trace follows a primary ray through screen position (screenX, screenY) in [0,1]²
// and returns its color clamped to [0,1].
func (t *Tracer) Trace(ray core.Ray, screenX, screenY float64) core.Vec3 {
	t.screenX, t.screenY = screenX, screenY
	fullWeight := core.NewVec3(1, 1, 1)
	return t.traceRay(ray, fullWeight, t.config.MaxDepth, 0).Clamp(0, 1)
}

// traceRay returns the unclamped color carried back along ray. depth is the remaining
// reflection budget and level the number of calls above this one. weight is carried
// along but never used to cut recursion short.
func (t *Tracer) traceRay(ray core.Ray, weight core.Vec3, depth, level int) core.Vec3 {
	t.stats.Rays++
	if level > t.stats.MaxLevel {
		t.stats.MaxLevel = level
	}
	if level > t.config.ceiling() {
		t.stats.CeilingHits++
		return core.Vec3{}
	}

	hit, isHit := t.scene.Intersect(ray)
	if !isHit {
		// Only rays leaving the camera directly see the background
		if level == 0 {
			return t.background.Sample(t.screenX, t.screenY)
		}
		return core.Vec3{}
	}
	if depth < 0 || hit.Material == nil {
		return core.Vec3{}
	}

	if t.config.TextureMapping {
		return t.texture.Sample(SphericalUV(hit.Normal))
	}

	m := hit.Material
	direction := ray.Direction.Normalize()
	color := t.Shade(ray, hit)

	if m.IsReflective() {
		reflected := core.NewRay(hit.Point, direction.Reflect(hit.Normal).Normalize())
		t.stats.Reflections++
		color = color.Add(m.Reflective.MultiplyVec(
			t.traceRay(reflected, core.NewVec3(1, 1, 1), depth-1, level+1)))
	}

	if m.IsTransmissive() && hit.HasInterior {
		color = color.Add(t.refract(hit, direction, weight, depth, level))
	}

	return color
}

// refract handles the transmitted branch at a dielectric boundary. The medium stack
// change made here is undone before returning.
func (t *Tracer) refract(hit *core.HitRecord, direction, weight core.Vec3, depth, level int) core.Vec3 {
	m := hit.Material
	reflectance := t.fresnel(hit, direction)

	tr := t.media.EnterOrExit(hit, direction)
	defer t.media.Undo(tr.Change)

	ratio := tr.From / tr.To
	cosI := cosine(tr.Normal, direction)
	sinI := math.Sqrt(math.Max(0, 1-cosI*cosI))
	sinT := sinI * ratio
	if sinT > 1.0 {
		// Total internal reflection: the reflection branch already carries the energy
		t.stats.TotalInternalReflections++
		return core.Vec3{}
	}
	cosT := math.Sqrt(1 - sinT*sinT)

	transmitted := direction.Multiply(ratio).Add(tr.Normal.Multiply(ratio*cosI - cosT)).Normalize()

	childDepth := depth + 1
	if t.config.SymmetricRefractionDepth {
		childDepth = depth - 1
	}

	t.stats.Refractions++
	color := m.Transmissive.MultiplyVec(
		t.traceRay(core.NewRay(hit.Point, transmitted), weight, childDepth, level+1))
	if t.config.Fresnel {
		color = color.Multiply(1 - reflectance)
	}
	return color
}
