package renderer

import "errors"

var (
	// ErrNoScene is returned when rendering before a scene was set
	ErrNoScene = errors.New("no scene loaded")

	// ErrInvalidDimensions is returned for non-positive buffer sizes
	ErrInvalidDimensions = errors.New("invalid image dimensions")

	// ErrInvalidConfig wraps every Config.Validate failure
	ErrInvalidConfig = errors.New("invalid render configuration")
)
