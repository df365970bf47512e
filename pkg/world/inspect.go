package world

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitInfo describes the surface a ray hits first
type HitInfo struct {
	T           float64
	Point       core.Tuple
	Normal      core.Tuple // Facing the eye
	Inside      bool
	N1, N2      float64
	Reflectance float64 // Schlick term at the hit
	Shape       string
	Name        string // Label of the hit leaf, if any
	Material    material.Material
	Color       core.Color // Shaded color along the ray
	Shadowed    []bool     // Per light, from the over point
}

// Inspect traces ray and reports the first hit without rendering. The
// second result is false when nothing is hit.
func (w *World) Inspect(ray core.Ray) (HitInfo, bool) {
	xs := w.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return HitInfo{}, false
	}

	comps := geometry.PrepareComputations(hit, ray, xs)
	info := HitInfo{
		T:           comps.T,
		Point:       comps.Point,
		Normal:      comps.NormalVector,
		Inside:      comps.Inside,
		N1:          comps.N1,
		N2:          comps.N2,
		Reflectance: comps.Schlick(),
		Shape:       comps.Object.Shape().Name(),
		Name:        comps.Object.Leaf.Name,
		Material:    *comps.Object.Material(),
		Color:       w.ShadeHit(comps, w.MaxDepth),
	}
	for _, light := range w.lights {
		info.Shadowed = append(info.Shadowed, w.IsShadowed(comps.OverPoint, light))
	}
	return info, true
}
