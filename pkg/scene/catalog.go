package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned by Lookup for names not in the catalogue
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	MaxDepth    int    `json:"maxDepth"`    // Suggested recursion depth
}

type builtin struct {
	info  SceneInfo
	build func(aspect float64) *Scene
}

var builtins = map[string]builtin{}

func register(info SceneInfo, build func(aspect float64) *Scene) {
	builtins[info.ID] = builtin{info: info, build: build}
}

func init() {
	register(SceneInfo{
		ID:          "diffuse-sphere",
		DisplayName: "Diffuse Sphere",
		Description: "A matte sphere lit from directly above, seen from above",
		MaxDepth:    0,
	}, NewDiffuseSphereScene)
	register(SceneInfo{
		ID:          "mirror",
		DisplayName: "Mirror Floor",
		Description: "A shiny sphere standing on a mirror",
		MaxDepth:    2,
	}, NewMirrorScene)
	register(SceneInfo{
		ID:          "glass-checker",
		DisplayName: "Glass Over Checkerboard",
		Description: "A glass sphere refracting a checkerboard floor",
		MaxDepth:    1,
	}, NewGlassCheckerScene)
	register(SceneInfo{
		ID:          "nested-bubble",
		DisplayName: "Nested Bubble",
		Description: "An air bubble inside a glass ball inside a water drop",
		MaxDepth:    2,
	}, NewNestedBubbleScene)
	register(SceneInfo{
		ID:          "spotlight",
		DisplayName: "Spotlight",
		Description: "Boxes, a cone and a triangle wall under a spot light",
		MaxDepth:    1,
	}, NewSpotlightScene)
	register(SceneInfo{
		ID:          "textured",
		DisplayName: "Textured Sphere",
		Description: "Spherical texture mapping in front of a gradient background",
		MaxDepth:    0,
	}, NewTexturedScene)
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Lookup builds the named scene for the given aspect ratio (width / height)
func Lookup(id string, aspect float64) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return b.build(aspect), nil
}
