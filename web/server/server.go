package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server renders built-in scenes over HTTP
type Server struct {
	port   int
	logger core.Logger
	echo   *echo.Echo
}

// NewServer creates a server and registers its routes
func NewServer(port int, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(corsMiddleware)

	s := &Server{port: port, logger: logger, echo: e}

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until the server is shut down
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Noticef("starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for running renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

// HealthResponse reports liveness and the host the renders run on
type HealthResponse struct {
	Status        string  `json:"status"`
	CPUModel      string  `json:"cpuModel,omitempty"`
	ClockGHz      float64 `json:"clockGhz,omitempty"`
	Workers       int     `json:"workers"`
	TotalMemoryGB uint64  `json:"totalMemoryGb,omitempty"`
}

// handleHealth answers ok even when host details are unavailable
func (s *Server) handleHealth(c echo.Context) error {
	response := HealthResponse{
		Status:  "ok",
		Workers: renderer.DefaultWorkers(),
	}

	if info, err := cpu.Info(); err == nil && len(info) > 0 {
		response.CPUModel = info[0].ModelName
		response.ClockGHz = info[0].Mhz / 1000
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		response.TotalMemoryGB = vm.Total / (1024 * 1024 * 1024)
	}

	return c.JSON(http.StatusOK, response)
}

func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.List())
}

// handleSceneConfig returns the defaults and parameter limits for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	id := c.QueryParam("scene")
	if id == "" {
		id = defaultScene
	}

	var info *scene.SceneInfo
	for _, candidate := range scene.List() {
		if candidate.ID == id {
			info = &candidate
			break
		}
	}
	if info == nil {
		return jsonError(c, http.StatusNotFound, fmt.Errorf("%w: %q", scene.ErrUnknownScene, id))
	}

	defaults := renderer.DefaultConfig()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene": info,
		"defaults": map[string]interface{}{
			"width":         defaultSize,
			"height":        defaultSize,
			"maxDepth":      info.MaxDepth,
			"antialiasGrid": defaults.AntialiasGrid,
			"ambientLight":  defaults.AmbientLight,
			"attenuation":   defaults.Attenuation,
		},
		"limits": map[string]interface{}{
			"width":         map[string]int{"min": 1, "max": maxSize},
			"height":        map[string]int{"min": 1, "max": maxSize},
			"maxDepth":      map[string]int{"min": 0, "max": maxDepth},
			"antialiasGrid": map[string]int{"min": 0, "max": maxGrid},
		},
	})
}

func jsonError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"error": err.Error()})
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter; an empty value keeps the default
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
