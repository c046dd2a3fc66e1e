package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	_ "golang.org/x/image/bmp" // BMP decoder

	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

// LoadImage loads a PNG, JPEG or BMP image as raw RGB with row 0 at the bottom
func LoadImage(filename string) (*tracer.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (format detected from the file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return FromImage(img), nil
}

// FromImage converts a decoded image, flipping it so the bottom row comes first
func FromImage(img image.Image) *tracer.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	out := tracer.NewImage(width, height)

	for y := 0; y < height; y++ {
		row := height - 1 - y
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			out.SetRGB(x, row, uint8(r>>8), uint8(g>>8), uint8(b>>8))
		}
	}

	return out
}
