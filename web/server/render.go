package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	defaultScene = "glass-checker"
	defaultSize  = 256
	maxSize      = 2000
	maxDepth     = 32
	maxGrid      = 8

	consoleBuffer = 100
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene          string `json:"scene"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	MaxDepth       int    `json:"maxDepth"`      // Raised to the scene's hint when lower
	AntialiasGrid  int    `json:"antialiasGrid"` // Grid N takes (N+1)² samples
	Jitter         bool   `json:"jitter"`
	Fresnel        bool   `json:"fresnel"`
	TextureMapping bool   `json:"textureMapping"`
	Format         string `json:"format"` // png, bmp or json
}

// Stats represents render statistics
type Stats struct {
	TotalPixels              int     `json:"totalPixels"`
	TotalSamples             int64   `json:"totalSamples"`
	AverageSamples           float64 `json:"averageSamples"`
	Rays                     int64   `json:"rays"`
	Reflections              int64   `json:"reflections"`
	Refractions              int64   `json:"refractions"`
	TotalInternalReflections int64   `json:"totalInternalReflections"`
	CeilingHits              int64   `json:"ceilingHits"`
	MaxLevel                 int     `json:"maxLevel"`
	Workers                  int     `json:"workers"`
}

// RenderResponse is the body of a json format render
type RenderResponse struct {
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

var contentTypes = map[string]string{
	"png": "image/png",
	"bmp": "image/bmp",
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene"), Format: values.Get("format")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}
	if req.Format == "" {
		req.Format = "png"
	}
	if _, ok := contentTypes[req.Format]; !ok && req.Format != "json" {
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", defaultSize, 1, maxSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaultSize, 1, maxSize); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", 0, 0, maxDepth); err != nil {
		return nil, err
	}
	if req.AntialiasGrid, err = parseIntParam(values, "antialiasGrid", 0, 0, maxGrid); err != nil {
		return nil, err
	}
	if req.Jitter, err = parseBoolParam(values, "jitter", false); err != nil {
		return nil, err
	}
	if req.Fresnel, err = parseBoolParam(values, "fresnel", false); err != nil {
		return nil, err
	}
	if req.TextureMapping, err = parseBoolParam(values, "textureMapping", false); err != nil {
		return nil, err
	}

	return req, nil
}

// config builds the render configuration, with the scene's hints applied on top
func (req *RenderRequest) config(s *scene.Scene) renderer.Config {
	config := renderer.DefaultConfig()
	config.MaxDepth = req.MaxDepth
	config.AntialiasGrid = req.AntialiasGrid
	config.Jitter = req.Jitter
	config.Fresnel = req.Fresnel
	config.TextureMapping = req.TextureMapping
	config.Config = s.Hints.Apply(config.Config)
	return config
}

// handleRender renders a scene and answers with the encoded image, or with the image,
// statistics and log messages for format=json
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	sceneObj, err := scene.Lookup(req.Scene, float64(req.Width)/float64(req.Height))
	if err != nil {
		return jsonError(c, http.StatusNotFound, err)
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, consoleBuffer)
	webLogger := NewWebLogger(renderID, consoleChan, s.logger)

	raytracer := renderer.NewRaytracer(req.config(sceneObj), webLogger)
	raytracer.SetScene(sceneObj)
	if err := raytracer.Setup(req.Width, req.Height); err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	startTime := time.Now()
	if err := raytracer.Render(c.Request().Context()); err != nil {
		if errors.Is(err, renderer.ErrNoScene) {
			return jsonError(c, http.StatusInternalServerError, err)
		}
		// Client went away
		s.logger.Warningf("%s: %v", renderID, err)
		return err
	}
	elapsed := time.Since(startTime)

	buffer, width, height := raytracer.Buffer()
	img := loaders.BufferToImage(buffer, width, height)

	format := req.Format
	if format == "json" {
		format = "png"
	}
	var encoded bytes.Buffer
	if err := loaders.EncodeImage(&encoded, img, format); err != nil {
		return jsonError(c, http.StatusInternalServerError, err)
	}

	if req.Format != "json" {
		return c.Blob(http.StatusOK, contentTypes[req.Format], encoded.Bytes())
	}

	stats := raytracer.Stats()
	return c.JSON(http.StatusOK, RenderResponse{
		Scene:     req.Scene,
		Width:     width,
		Height:    height,
		ImageData: base64.StdEncoding.EncodeToString(encoded.Bytes()),
		Stats: Stats{
			TotalPixels:              stats.Pixels,
			TotalSamples:             stats.Samples,
			AverageSamples:           stats.SamplesPerPixel(),
			Rays:                     stats.Tracer.Rays,
			Reflections:              stats.Tracer.Reflections,
			Refractions:              stats.Tracer.Refractions,
			TotalInternalReflections: stats.Tracer.TotalInternalReflections,
			CeilingHits:              stats.Tracer.CeilingHits,
			MaxLevel:                 stats.Tracer.MaxLevel,
			Workers:                  stats.Workers,
		},
		Console:   drainConsole(consoleChan),
		ElapsedMs: elapsed.Milliseconds(),
	})
}
