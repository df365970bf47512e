package world

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultMaxDepth bounds the reflection and refraction recursion
const DefaultMaxDepth = 8

// World holds the root objects and point lights of a scene and shades rays
// against them. A World must not be modified once rendering starts; after
// that it is safe for concurrent ColorAt calls.
type World struct {
	objects []*geometry.Object
	lights  []lights.PointLight

	MaxDepth int // Recursion budget used by ColorAt
}

// New creates an empty world
func New() *World {
	return &World{MaxDepth: DefaultMaxDepth}
}

// NewDefault creates the reference world: one white light at (-10, 10, -10)
// and two concentric spheres, the inner one scaled by half
func NewDefault() *World {
	w := New()
	w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White()))

	outer := geometry.NewSphere()
	m := material.New()
	m.Color = core.NewColor(0.8, 1.0, 0.6)
	m.Diffuse = 0.7
	m.Specular = 0.2
	outer.SetMaterial(m)

	inner := geometry.NewSphere()
	inner.SetTransform(core.Scaling(0.5, 0.5, 0.5))

	w.AddObject(outer)
	w.AddObject(inner)
	return w
}

// AddObject adds a root object. Bounding boxes of the whole subtree are
// computed here so rendering only ever reads them.
func (w *World) AddObject(o *geometry.Object) {
	o.Walk(func(node *geometry.Object) {
		node.Bounds()
	})
	w.objects = append(w.objects, o)
}

// AddLight adds a point light
func (w *World) AddLight(l lights.PointLight) {
	w.lights = append(w.lights, l)
}

// Objects returns the root objects
func (w *World) Objects() []*geometry.Object {
	return w.objects
}

// Lights returns the point lights
func (w *World) Lights() []lights.PointLight {
	return w.lights
}

// Intersect returns every intersection of ray with the world, sorted by t
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, o := range w.objects {
		xs = append(xs, o.Intersect(ray)...)
	}
	xs.Sort()
	return xs
}

// ColorAt returns the color seen along ray using the world's recursion budget
func (w *World) ColorAt(ray core.Ray) core.Color {
	return w.ColorAtWithDepth(ray, w.MaxDepth)
}

// ColorAtWithDepth returns the color seen along ray with remaining reflection
// and refraction bounces. A miss is black.
func (w *World) ColorAtWithDepth(ray core.Ray, remaining int) core.Color {
	xs := w.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return core.Black()
	}
	return w.ShadeHit(geometry.PrepareComputations(hit, ray, xs), remaining)
}

// ShadeHit sums direct lighting from every light and adds the reflected and
// refracted contributions. Only a surface that is both reflective and
// transparent weights them by the Fresnel reflectance; otherwise they are
// added as they are.
func (w *World) ShadeHit(comps geometry.Computations, remaining int) core.Color {
	m := comps.Object.Material()

	surface := core.Black()
	for _, light := range w.lights {
		surface = surface.Add(material.Lighting(
			m,
			comps.Object.Inverse,
			light,
			comps.OverPoint,
			comps.EyeVector,
			comps.NormalVector,
			w.IsShadowed(comps.OverPoint, light),
		))
	}

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := comps.Schlick()
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ReflectedColor follows the mirror ray from the over point
func (w *World) ReflectedColor(comps geometry.Computations, remaining int) core.Color {
	reflective := comps.Object.Material().Reflective
	if remaining <= 0 || reflective == 0 {
		return core.Black()
	}

	ray := core.NewRay(comps.OverPoint, comps.ReflectVector)
	return w.ColorAtWithDepth(ray, remaining-1).Multiply(reflective)
}

// RefractedColor follows the transmitted ray from the under point. Opaque
// surfaces and total internal reflection contribute nothing.
func (w *World) RefractedColor(comps geometry.Computations, remaining int) core.Color {
	transparency := comps.Object.Material().Transparency
	if remaining <= 0 || transparency == 0 {
		return core.Black()
	}

	direction, ok := comps.RefractionDirection()
	if !ok {
		return core.Black()
	}

	ray := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAtWithDepth(ray, remaining-1).Multiply(transparency)
}

// IsShadowed reports whether any shadow-casting object lies between point
// and the light. Objects beyond the light do not count.
func (w *World) IsShadowed(point core.Tuple, light lights.PointLight) bool {
	direction, distance := light.DirectionFrom(point)
	ray := core.NewRay(point, direction)

	for _, x := range w.Intersect(ray) {
		if x.T < 0 {
			continue
		}
		if x.T >= distance {
			break
		}
		if x.Object.Material().CastsShadows {
			return true
		}
	}
	return false
}
