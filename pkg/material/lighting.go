package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// SurfaceColor returns the material's color at a world-space point, using the
// pattern when one is attached
func (m *Material) SurfaceColor(worldToObject core.Matrix, point core.Tuple) core.Color {
	if m.Pattern != nil {
		return PatternAtObject(m.Pattern, worldToObject, point)
	}
	return m.Color
}

// Lighting computes Phong illumination from a single light. In shadow only
// the ambient term remains.
func Lighting(m *Material, worldToObject core.Matrix, light lights.PointLight, point, eye, normal core.Tuple, inShadow bool) core.Color {
	effective := m.SurfaceColor(worldToObject, point).MultiplyColor(light.Intensity)
	ambient := effective.Multiply(m.Ambient)
	if inShadow {
		return ambient
	}

	lightVector, _ := light.DirectionFrom(point)
	lightDotNormal := lightVector.Dot(normal)
	if lightDotNormal < 0 {
		// Light is on the other side of the surface
		return ambient
	}

	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)

	reflectDotEye := lightVector.Negate().Reflect(normal).Dot(eye)
	if reflectDotEye <= 0 {
		return ambient.Add(diffuse)
	}

	factor := math.Pow(reflectDotEye, m.Shininess)
	specular := light.Intensity.Multiply(m.Specular * factor)
	return ambient.Add(diffuse).Add(specular)
}
