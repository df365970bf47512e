package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// buildGlass places a hollow glass ball in front of two opaque spheres
func buildGlass(w *world.World) {
	w.AddLight(defaultLight())
	w.AddObject(checkeredFloor(core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.1, 0.1, 0.1), 0))

	glass := material.Glass()
	glass.Color = core.NewColor(0.1, 0.1, 0.1)
	glass.Ambient = 0
	glass.Diffuse = 0.1
	glass.Specular = 1
	glass.Shininess = 300
	glass.Reflective = 0.9
	glass.RefractiveIndex = material.IndexGlass

	ball := geometry.NewSphere()
	ball.Name = "glass ball"
	ball.SetMaterial(glass)

	air := glass
	air.RefractiveIndex = material.IndexAir
	air.CastsShadows = false
	bubble := geometry.NewSphere()
	bubble.Name = "air bubble"
	bubble.SetTransform(core.Scaling(0.5, 0.5, 0.5))
	bubble.SetMaterial(air)

	hollow := geometry.NewGroup(ball, bubble)
	hollow.SetTransform(core.Translation(0, 1, 0))
	w.AddObject(hollow)

	behind := []struct {
		name  string
		at    core.Tuple
		color core.Color
	}{
		{"red", core.Point(-1.5, 0.6, 3), core.NewColor(0.9, 0.2, 0.2)},
		{"blue", core.Point(1.5, 0.6, 3), core.NewColor(0.2, 0.3, 0.9)},
	}
	for _, b := range behind {
		s := geometry.NewSphere()
		s.Name = b.name
		s.SetTransform(core.Chain(core.Scaling(0.6, 0.6, 0.6), core.Translation(b.at.X, b.at.Y, b.at.Z)))
		s.SetMaterial(matte(b.color))
		w.AddObject(s)
	}

	water := material.Glass()
	water.Color = core.NewColor(0, 0, 0.1)
	water.Ambient = 0
	water.Diffuse = 0.1
	water.Reflective = 0.5
	water.RefractiveIndex = material.IndexWater
	water.CastsShadows = false
	drop := geometry.NewCylinder(0, 0.3, true)
	drop.Name = "water disc"
	drop.SetTransform(core.Chain(core.Scaling(0.5, 1, 0.5), core.RotationZ(math.Pi/12), core.Translation(-1.6, 0, -1)))
	drop.SetMaterial(water)
	w.AddObject(drop)
}
