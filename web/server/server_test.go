package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(0, nil)
	rec := get(t, s, "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var response HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status ok, got %s", response.Status)
	}
	if response.Workers < 1 {
		t.Errorf("Expected at least one worker, got %d", response.Workers)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header")
	}
}

func TestHandleScenes(t *testing.T) {
	s := NewServer(0, nil)
	rec := get(t, s, "/api/scenes")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var scenes []scene.SceneInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &scenes); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(scenes) != len(scene.List()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.List()), len(scenes))
	}
}

func TestHandleSceneConfig(t *testing.T) {
	s := NewServer(0, nil)

	rec := get(t, s, "/api/scene-config?scene=mirror")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var response struct {
		Scene    scene.SceneInfo        `json:"scene"`
		Defaults map[string]interface{} `json:"defaults"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Scene.ID != "mirror" {
		t.Errorf("Expected mirror, got %s", response.Scene.ID)
	}
	if response.Defaults["maxDepth"] != float64(2) {
		t.Errorf("Expected suggested depth 2, got %v", response.Defaults["maxDepth"])
	}

	if rec := get(t, s, "/api/scene-config?scene=nope"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestHandleRender(t *testing.T) {
	s := NewServer(0, nil)

	t.Run("png", func(t *testing.T) {
		rec := get(t, s, "/api/render?scene=diffuse-sphere&width=32&height=16")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Expected image/png, got %s", ct)
		}
		img, err := png.Decode(rec.Body)
		if err != nil {
			t.Fatalf("Failed to decode PNG: %v", err)
		}
		if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 16 {
			t.Errorf("Expected 32x16 image, got %v", img.Bounds())
		}
	})

	t.Run("bmp", func(t *testing.T) {
		rec := get(t, s, "/api/render?scene=textured&width=8&height=8&format=bmp")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		img, err := bmp.Decode(rec.Body)
		if err != nil {
			t.Fatalf("Failed to decode BMP: %v", err)
		}
		if img.Bounds().Dx() != 8 {
			t.Errorf("Expected width 8, got %d", img.Bounds().Dx())
		}
	})

	t.Run("json", func(t *testing.T) {
		rec := get(t, s, "/api/render?scene=glass-checker&width=16&height=16&antialiasGrid=1&format=json")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rec.Code)
		}
		var response RenderResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Stats.TotalPixels != 256 {
			t.Errorf("Expected 256 pixels, got %d", response.Stats.TotalPixels)
		}
		if response.Stats.AverageSamples != 4 {
			t.Errorf("Expected 4 samples per pixel, got %v", response.Stats.AverageSamples)
		}
		// The scene hints one level of recursion, so the glass sphere refracts
		if response.Stats.Refractions == 0 {
			t.Error("Expected refractions")
		}
		if len(response.Console) == 0 {
			t.Error("Expected console messages")
		}

		data, err := base64.StdEncoding.DecodeString(response.ImageData)
		if err != nil {
			t.Fatalf("Failed to decode base64: %v", err)
		}
		if _, err := png.Decode(bytes.NewReader(data)); err != nil {
			t.Errorf("Failed to decode PNG: %v", err)
		}
	})
}

func TestHandleRenderErrors(t *testing.T) {
	s := NewServer(0, nil)

	tests := []struct {
		name     string
		target   string
		expected int
	}{
		{"bad width", "/api/render?width=abc", http.StatusBadRequest},
		{"width out of range", "/api/render?width=0", http.StatusBadRequest},
		{"bad depth", "/api/render?maxDepth=-1", http.StatusBadRequest},
		{"bad bool", "/api/render?fresnel=maybe", http.StatusBadRequest},
		{"bad format", "/api/render?format=gif", http.StatusBadRequest},
		{"unknown scene", "/api/render?scene=nope&width=4&height=4", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.expected {
				t.Errorf("Expected status %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(0, nil)

	rec := get(t, s, "/api/inspect?scene=diffuse-sphere&width=64&height=64&x=32&y=32")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var response InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !response.Hit {
		t.Fatal("Expected the center pixel to hit the sphere")
	}
	if response.GeometryType != "sphere" || response.ObjectID != 1 {
		t.Errorf("Expected sphere 1, got %s %d", response.GeometryType, response.ObjectID)
	}
	if !response.Interior {
		t.Error("Expected sphere to have an interior")
	}
	if response.Material["diffuse"] == nil {
		t.Error("Expected diffuse term in material")
	}

	rec = get(t, s, "/api/inspect?scene=diffuse-sphere&width=64&height=64&x=0&y=0")
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Hit {
		t.Error("Expected the corner pixel to miss")
	}

	if rec := get(t, s, "/api/inspect?x=999"); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
