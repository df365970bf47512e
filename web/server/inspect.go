package server

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit         bool                   `json:"hit"`
	Shape       string                 `json:"shape,omitempty"`
	Name        string                 `json:"name,omitempty"`
	Point       [3]float64             `json:"point"`
	Normal      [3]float64             `json:"normal"`
	Distance    float64                `json:"distance"`
	Inside      bool                   `json:"inside"`
	N1          float64                `json:"n1"`
	N2          float64                `json:"n2"`
	Reflectance float64                `json:"reflectance"`
	Color       [3]float64             `json:"color"`
	Shadowed    []bool                 `json:"shadowed,omitempty"` // One entry per light
	Material    map[string]interface{} `json:"material,omitempty"`
}

func tuple3(t core.Tuple) [3]float64 {
	return [3]float64{t.X, t.Y, t.Z}
}

func colorHex(c core.Color) string {
	r, g, b := c.ToBytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// extractMaterialInfo flattens a material into JSON-friendly properties
func extractMaterialInfo(m material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":           colorHex(m.Color),
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflective":      m.Reflective,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
		"castsShadows":    m.CastsShadows,
	}
	if m.Pattern != nil {
		properties["pattern"] = patternName(m.Pattern)
	}
	return properties
}

// patternName turns *material.Checkers into "checkers"
func patternName(p material.Pattern) string {
	t := reflect.TypeOf(p)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

func newInspectResponse(info world.HitInfo) InspectResponse {
	return InspectResponse{
		Hit:         true,
		Shape:       info.Shape,
		Name:        info.Name,
		Point:       tuple3(info.Point),
		Normal:      tuple3(info.Normal),
		Distance:    info.T,
		Inside:      info.Inside,
		N1:          info.N1,
		N2:          info.N2,
		Reflectance: info.Reflectance,
		Color:       [3]float64{info.Color.R, info.Color.G, info.Color.B},
		Shadowed:    info.Shadowed,
		Material:    extractMaterialInfo(info.Material),
	}
}

// handleInspect casts the camera ray through one pixel and reports its hit
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	query := r.URL.Query()
	if query.Get("x") == "" || query.Get("y") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y are required"})
		return
	}
	pixelX, err := parseIntParam(query, "x", 0, 0, req.Width-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	pixelY, err := parseIntParam(query, "y", 0, 0, req.Height-1)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sc, err := s.createScene(req, nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	info, ok := sc.World.Inspect(sc.Camera.RayForPixel(pixelX, pixelY))
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}
	writeJSON(w, http.StatusOK, newInspectResponse(info))
}
