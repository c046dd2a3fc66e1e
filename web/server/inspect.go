package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectID     int                    `json:"objectId,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Interior     bool                   `json:"interior"`
	Material     map[string]interface{} `json:"material,omitempty"`
	Geometry     map[string]interface{} `json:"geometry,omitempty"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(v core.Vec3) string {
	c := v.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo lists the non-zero terms of a Phong material
func extractMaterialInfo(m *core.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color": hexColor(m.Diffuse.Add(m.Emissive)),
	}
	terms := map[string]core.Vec3{
		"ambient":      m.Ambient,
		"diffuse":      m.Diffuse,
		"specular":     m.Specular,
		"emissive":     m.Emissive,
		"reflective":   m.Reflective,
		"transmissive": m.Transmissive,
	}
	for name, term := range terms {
		if !term.IsZero() {
			properties[name] = vec(term)
		}
	}
	if !m.Specular.IsZero() {
		properties["shininess"] = m.Shininess
	}
	if m.IsTransmissive() {
		properties["index"] = m.Index
	}
	return properties
}

// extractGeometryInfo names the shape and its defining parameters
func extractGeometryInfo(shape core.Shape) (string, map[string]interface{}) {
	switch g := shape.(type) {
	case *geometry.Sphere:
		return "sphere", map[string]interface{}{"center": vec(g.Center), "radius": g.Radius}
	case *geometry.Plane:
		properties := map[string]interface{}{"point": vec(g.Point), "normal": vec(g.Normal)}
		if g.Checker != nil {
			properties["checkerSize"] = g.CheckerSize
		}
		return "plane", properties
	case *geometry.Box:
		return "box", map[string]interface{}{"min": vec(g.Min), "max": vec(g.Max)}
	case *geometry.Triangle:
		return "triangle", map[string]interface{}{
			"vertices": [3][3]float64{vec(g.V0), vec(g.V1), vec(g.V2)},
		}
	case *geometry.Cone:
		return "cone", map[string]interface{}{
			"base":         vec(g.Base),
			"height":       g.Height,
			"bottomRadius": g.BottomRadius,
			"topRadius":    g.TopRadius,
			"capped":       g.Capped,
		}
	default:
		return "unknown", map[string]interface{}{}
	}
}

// inspectPixel casts the primary ray of a pixel, counted from the top-left corner
// as on screen, and describes the first object it hits
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResponse {
	sceneObj.Prepare()

	// Buffer row 0 is the bottom of the picture
	sx := float64(pixelX) / float64(width)
	sy := float64(height-1-pixelY) / float64(height)
	ray := sceneObj.Camera.RayThrough(sx, sy)

	hit, isHit := sceneObj.Intersect(ray)
	if !isHit {
		return InspectResponse{Hit: false}
	}

	response := InspectResponse{
		Hit:      true,
		ObjectID: hit.ObjectID,
		Point:    vec(hit.Point),
		Normal:   vec(hit.Normal),
		Distance: hit.T * ray.Direction.Length(),
		Interior: hit.HasInterior,
	}
	if hit.Material != nil {
		response.Material = extractMaterialInfo(hit.Material)
	}

	shapes := sceneObj.Shapes()
	if hit.ObjectID >= 1 && hit.ObjectID <= len(shapes) {
		response.GeometryType, response.Geometry = extractGeometryInfo(shapes[hit.ObjectID-1])
	}
	return response
}

// handleInspect reports what the primary ray through pixel (x, y) hits
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()

	id := values.Get("scene")
	if id == "" {
		id = defaultScene
	}

	width, err := parseIntParam(values, "width", defaultSize, 1, maxSize)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	height, err := parseIntParam(values, "height", defaultSize, 1, maxSize)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	x, err := parseIntParam(values, "x", width/2, 0, width-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}
	y, err := parseIntParam(values, "y", height/2, 0, height-1)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err)
	}

	sceneObj, err := scene.Lookup(id, float64(width)/float64(height))
	if err != nil {
		return jsonError(c, http.StatusNotFound, err)
	}

	return c.JSON(http.StatusOK, inspectPixel(sceneObj, width, height, x, y))
}
