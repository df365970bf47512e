package lights

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight is an infinitely small light source with no size or falloff
type PointLight struct {
	Position  core.Tuple
	Intensity core.Color
}

// NewPointLight creates a point light at position with the given intensity
func NewPointLight(position core.Tuple, intensity core.Color) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// DirectionFrom returns the unit vector from point toward the light and the
// distance between them
func (l PointLight) DirectionFrom(point core.Tuple) (core.Tuple, float64) {
	v := l.Position.Subtract(point)
	distance := v.Magnitude()
	return v.Normalize(), distance
}

func (l PointLight) String() string {
	return fmt.Sprintf("point light at %v intensity (%g, %g, %g)",
		l.Position, l.Intensity.R, l.Intensity.G, l.Intensity.B)
}
