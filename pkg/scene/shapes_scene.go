package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// buildMirrors puts a sphere between two parallel mirrors so reflections
// recurse until the depth budget runs out
func buildMirrors(w *world.World) {
	w.AddLight(lights.NewPointLight(core.Point(0, 6, -3), core.White()))
	w.AddObject(checkeredFloor(core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.3, 0.3, 0.3), 0))

	mirror := material.Mirror()
	mirror.Specular = 1
	mirror.Shininess = 300
	for i, x := range []float64{-3, 3} {
		m := geometry.NewCube()
		m.Name = []string{"left mirror", "right mirror"}[i]
		m.SetTransform(core.Chain(core.Scaling(0.05, 2.5, 4), core.Translation(x, 2.5, 2)))
		m.SetMaterial(mirror)
		w.AddObject(m)
	}

	ball := geometry.NewSphere()
	ball.Name = "ball"
	ball.SetTransform(core.Translation(0, 1, 2))
	ball.SetMaterial(matte(core.NewColor(0.9, 0.4, 0.1)))
	w.AddObject(ball)
}

// buildShapes shows each primitive kind on a plane
func buildShapes(w *world.World) {
	w.AddLight(defaultLight())
	w.AddObject(checkeredFloor(core.NewColor(0.85, 0.85, 0.85), core.NewColor(0.55, 0.55, 0.6), 0.1))

	cyl := geometry.NewCylinder(0, 2, true)
	cyl.Name = "cylinder"
	cyl.SetTransform(core.Chain(core.Scaling(0.6, 1, 0.6), core.Translation(-3, 0, 1)))
	cyl.SetMaterial(matte(core.NewColor(0.2, 0.6, 0.9)))
	w.AddObject(cyl)

	// Double-napped cone truncated into an hourglass
	cone := geometry.NewCone(-1, 1, true)
	cone.Name = "cone"
	cone.SetTransform(core.Chain(core.Scaling(0.7, 1, 0.7), core.Translation(-1, 1, 1)))
	cone.SetMaterial(matte(core.NewColor(0.9, 0.3, 0.3)))
	w.AddObject(cone)

	cube := geometry.NewCube()
	cube.Name = "cube"
	cube.SetTransform(core.Chain(core.Scaling(0.6, 0.6, 0.6), core.RotationY(math.Pi/6), core.Translation(1, 0.6, 0.5)))
	cm := matte(core.NewColor(0.3, 0.8, 0.3))
	cm.Reflective = 0.2
	cube.SetMaterial(cm)
	w.AddObject(cube)

	pm := matte(core.NewColor(0.9, 0.8, 0.3))
	pyramid, err := geometry.NewTriangleMesh(
		[]core.Tuple{
			core.Point(0, 1.5, 0),
			core.Point(-1, 0, -1), core.Point(1, 0, -1),
			core.Point(1, 0, 1), core.Point(-1, 0, 1),
		},
		[]int{0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 1},
		&geometry.TriangleMeshOptions{Material: &pm},
	)
	if err != nil {
		panic(err)
	}
	pyramid.Name = "pyramid"
	pyramid.SetTransform(core.Chain(core.Scaling(0.8, 0.8, 0.8), core.Translation(3, 0, 1)))
	w.AddObject(pyramid)
}
