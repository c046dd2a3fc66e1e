package loaders

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for output file extensions without an encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// BufferToImage converts a bottom-up RGB pixel buffer to a top-down image
func BufferToImage(buffer []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := height - 1 - y
		for x := 0; x < width; x++ {
			i := (x + row*width) * 3
			img.SetRGBA(x, y, color.RGBA{R: buffer[i], G: buffer[i+1], B: buffer[i+2], A: 255})
		}
	}
	return img
}

// EncodeImage writes img in the named format: "png", "bmp", "jpg" or "jpeg"
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "jpg", "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SaveBuffer writes a pixel buffer to filename, choosing the encoder by extension
func SaveBuffer(filename string, buffer []byte, width, height int) error {
	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	if format == "" {
		return fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, filename)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := EncodeImage(file, BufferToImage(buffer, width, height), format); err != nil {
		file.Close()
		os.Remove(filename)
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return file.Close()
}
