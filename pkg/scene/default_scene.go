package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// buildDefault copies the reference world
func buildDefault(w *world.World) {
	ref := world.NewDefault()
	for _, l := range ref.Lights() {
		w.AddLight(l)
	}
	for _, o := range ref.Objects() {
		w.AddObject(o)
	}
}

func matte(color core.Color) material.Material {
	m := material.New()
	m.Color = color
	m.Specular = 0.3
	return m
}

func checkeredFloor(a, b core.Color, reflective float64) *geometry.Object {
	floor := geometry.NewPlane()
	floor.Name = "floor"
	m := material.New()
	m.Pattern = material.NewCheckers(a, b)
	m.Specular = 0
	m.Reflective = reflective
	floor.SetMaterial(m)
	return floor
}

func buildPatterns(w *world.World) {
	w.AddLight(defaultLight())

	white := core.White()
	w.AddObject(checkeredFloor(white, core.NewColor(0.35, 0.35, 0.35), 0.1))

	wall := geometry.NewPlane()
	wall.Name = "wall"
	wall.SetTransform(core.Chain(core.RotationX(math.Pi/2), core.Translation(0, 0, 6)))
	stripes := material.NewStripe(core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.4, 0.6, 0.8))
	stripes.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.RotationY(math.Pi/4)))
	cross := material.NewStripe(core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.8, 0.5, 0.3))
	cross.SetTransform(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.RotationY(-math.Pi/4)))
	wm := matte(white)
	wm.Pattern = material.NewBlend(stripes, cross)
	wall.SetMaterial(wm)
	w.AddObject(wall)

	left := geometry.NewSphere()
	left.Name = "stripes"
	left.SetTransform(core.Chain(core.Scaling(0.8, 0.8, 0.8), core.Translation(-2, 0.8, 0)))
	sm := matte(white)
	stripe := material.NewStripe(core.NewColor(0.9, 0.2, 0.2), core.NewColor(0.95, 0.95, 0.95))
	stripe.SetTransform(core.Chain(core.Scaling(0.25, 1, 1), core.RotationZ(math.Pi/3)))
	sm.Pattern = stripe
	left.SetMaterial(sm)
	w.AddObject(left)

	middle := geometry.NewSphere()
	middle.Name = "rings"
	middle.SetTransform(core.Translation(0, 1, 0.5))
	rm := matte(white)
	ring := material.NewRing(core.NewColor(0.2, 0.6, 0.3), core.NewColor(0.9, 0.9, 0.5))
	ring.SetTransform(core.Chain(core.Scaling(0.2, 0.2, 0.2), core.RotationX(-math.Pi/4)))
	rm.Pattern = ring
	middle.SetMaterial(rm)
	w.AddObject(middle)

	right := geometry.NewSphere()
	right.Name = "gradient"
	right.SetTransform(core.Chain(core.Scaling(0.7, 0.7, 0.7), core.Translation(2, 0.7, 0)))
	gm := matte(white)
	gradient := material.NewGradient(core.NewColor(0.2, 0.3, 0.9), core.NewColor(0.9, 0.3, 0.2))
	gradient.SetTransform(core.Chain(core.Scaling(2, 1, 1), core.Translation(-1, 0, 0)))
	gm.Pattern = gradient
	right.SetMaterial(gm)
	w.AddObject(right)
}
