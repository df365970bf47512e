package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Pip centres on a unit die: one on top, two on the front, three on the right
var diePips = []core.Tuple{
	core.Point(0, 1, 0),
	core.Point(-0.45, 0.45, -1), core.Point(0.45, -0.45, -1),
	core.Point(1, 0.5, -0.5), core.Point(1, 0, 0), core.Point(1, -0.5, 0.5),
}

// NewDie carves pips out of a cube rounded by a sphere
func NewDie(body, pip material.Material) *geometry.Object {
	cube := geometry.NewCube()
	cube.SetMaterial(body)
	ball := geometry.NewSphere()
	ball.SetTransform(core.Scaling(1.4, 1.4, 1.4))
	ball.SetMaterial(body)
	rounded := geometry.NewCSGIntersection(cube, ball)

	pips := geometry.NewGroup()
	for _, p := range diePips {
		s := geometry.NewSphere()
		s.SetTransform(core.Chain(core.Scaling(0.18, 0.18, 0.18), core.Translation(p.X, p.Y, p.Z)))
		pips.AddChild(s)
	}
	pips.SetMaterial(pip)

	die := geometry.NewDifference(rounded, pips)
	die.Name = "die"
	return die
}

func buildCSG(w *world.World) {
	w.AddLight(defaultLight())
	w.AddObject(checkeredFloor(core.NewColor(0.8, 0.8, 0.8), core.NewColor(0.5, 0.5, 0.55), 0.2))

	body := matte(core.NewColor(0.95, 0.95, 0.9))
	body.Reflective = 0.05
	die := NewDie(body, matte(core.NewColor(0.1, 0.1, 0.1)))
	die.SetTransform(core.Chain(core.Scaling(0.8, 0.8, 0.8), core.Translation(-1.2, 0.8, 0)))
	w.AddObject(die)

	// A lens is where two offset spheres overlap
	lensMat := matte(core.NewColor(0.2, 0.5, 0.9))
	lensMat.Reflective = 0.3
	a := geometry.NewSphere()
	a.SetTransform(core.Translation(-0.6, 0, 0))
	b := geometry.NewSphere()
	b.SetTransform(core.Translation(0.6, 0, 0))
	lens := geometry.NewCSGIntersection(a, b)
	lens.Name = "lens"
	lens.SetMaterial(lensMat)
	lens.SetTransform(core.Chain(core.Scaling(1.2, 1.2, 1.2), core.Translation(1.8, 1, 0.5)))
	w.AddObject(lens)

	// A ring: cylinder minus a narrower cylinder, unioned with a ball on top
	outer := geometry.NewCylinder(0, 0.3, true)
	inner := geometry.NewCylinder(-0.1, 0.4, true)
	inner.SetTransform(core.Scaling(0.6, 1, 0.6))
	ring := geometry.NewDifference(outer, inner)
	ring.SetMaterial(matte(core.NewColor(0.9, 0.7, 0.2)))
	top := geometry.NewSphere()
	top.SetTransform(core.Chain(core.Scaling(0.35, 0.35, 0.35), core.Translation(0, 0.6, 0)))
	top.SetMaterial(matte(core.NewColor(0.8, 0.2, 0.2)))
	ornament := geometry.NewUnion(ring, top)
	ornament.Name = "ornament"
	ornament.SetTransform(core.Translation(0.2, 0, -2))
	w.AddObject(ornament)
}
