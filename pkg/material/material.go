package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface responds to light
type Material struct {
	Color           core.Color
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64 // 0 = matte, 1 = perfect mirror
	Transparency    float64 // 0 = opaque, 1 = fully transparent
	RefractiveIndex float64
	Pattern         Pattern // Overrides Color when set
	CastsShadows    bool
}

// New returns the default material: white, non-reflective, opaque
func New() Material {
	return Material{
		Color:           core.White(),
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: 1.0,
		CastsShadows:    true,
	}
}

// Glass returns a clear glass material with refractive index 1.5
func Glass() Material {
	m := New()
	m.Transparency = 1.0
	m.RefractiveIndex = 1.5
	return m
}

// Mirror returns a dark, fully reflective material
func Mirror() Material {
	m := New()
	m.Color = core.Black()
	m.Ambient = 0
	m.Diffuse = 0
	m.Reflective = 1.0
	return m
}

// Common refractive indices
const (
	IndexVacuum  = 1.0
	IndexAir     = 1.00029
	IndexWater   = 1.333
	IndexGlass   = 1.52
	IndexDiamond = 2.417
)

// Validate checks that every coefficient lies in its physical range
func (m Material) Validate() error {
	unit := []struct {
		name  string
		value float64
	}{
		{"ambient", m.Ambient},
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
		{"reflective", m.Reflective},
		{"transparency", m.Transparency},
	}
	for _, c := range unit {
		if c.value < 0 || c.value > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", c.name, c.value)
		}
	}
	if m.Shininess <= 0 {
		return fmt.Errorf("shininess must be positive, got %f", m.Shininess)
	}
	if m.RefractiveIndex < 1 {
		return fmt.Errorf("refractive index must be at least 1, got %f", m.RefractiveIndex)
	}
	if m.Color.R < 0 || m.Color.G < 0 || m.Color.B < 0 {
		return fmt.Errorf("color components must be non-negative, got %v", m.Color)
	}
	return nil
}
