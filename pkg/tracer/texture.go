package tracer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Image is a raw RGB image addressed bottom-up: row 0 is the bottom of the picture
type Image struct {
	Width  int
	Height int
	Pix    []byte // Width*Height*3 bytes
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// SetRGB writes the texel at (x, y)
func (img *Image) SetRGB(x, y int, r, g, b uint8) {
	i := (y*img.Width + x) * 3
	img.Pix[i], img.Pix[i+1], img.Pix[i+2] = r, g, b
}

// Sample returns the nearest texel at (u, v), or black for a missing image or
// coordinates outside [0,1)
func (img *Image) Sample(u, v float64) core.Vec3 {
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		return core.Vec3{}
	}
	if u < 0 || u >= 1 || v < 0 || v >= 1 {
		return core.Vec3{}
	}

	x := int(u * float64(img.Width))
	y := int(v * float64(img.Height))
	i := (y*img.Width + x) * 3
	if i+2 >= len(img.Pix) {
		return core.Vec3{}
	}
	return core.NewVec3(
		float64(img.Pix[i])/255.0,
		float64(img.Pix[i+1])/255.0,
		float64(img.Pix[i+2])/255.0,
	)
}

var (
	sphereUp   = core.NewVec3(0, 1, 0)
	sphereEast = core.NewVec3(1, 0, 0)
)

// SphericalUV maps a unit normal to latitude/longitude texture coordinates.
// v runs from the south pole (0) to the north pole (1); at the poles u is 0.
func SphericalUV(normal core.Vec3) (u, v float64) {
	n := normal.Normalize()

	phi := math.Acos(math.Max(-1, math.Min(1, -n.Dot(sphereUp))))
	v = phi / math.Pi

	sinPhi := math.Sin(phi)
	if sinPhi < 1e-12 {
		return 0, v
	}

	cosTheta := math.Max(-1, math.Min(1, sphereEast.Dot(n)/sinPhi))
	theta := math.Acos(cosTheta) / (2 * math.Pi)

	u = theta
	if sphereUp.Cross(sphereEast).Dot(n) <= 0 {
		u = 1 - theta
	}
	return u, v
}
