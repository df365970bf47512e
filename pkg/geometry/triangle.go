package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle is a flat or smooth-shaded triangle. Smooth triangles interpolate
// the vertex normals N1..N3 with the hit's barycentric coordinates.
type Triangle struct {
	P1, P2, P3 core.Tuple
	N1, N2, N3 core.Tuple
	E1, E2     core.Tuple // P2-P1 and P3-P1
	Normal     core.Tuple // Flat face normal
	Smooth     bool
}

// NewTriangle creates a flat triangle
func NewTriangle(p1, p2, p3 core.Tuple) *Triangle {
	e1 := p2.Subtract(p1)
	e2 := p3.Subtract(p1)
	return &Triangle{
		P1:     p1,
		P2:     p2,
		P3:     p3,
		E1:     e1,
		E2:     e2,
		Normal: e2.Cross(e1).Normalize(),
	}
}

// NewSmoothTriangle creates a triangle with per-vertex normals
func NewSmoothTriangle(p1, p2, p3, n1, n2, n3 core.Tuple) *Triangle {
	t := NewTriangle(p1, p2, p3)
	t.N1, t.N2, t.N3 = n1, n2, n3
	t.Smooth = true
	return t
}

func (tr *Triangle) Name() string {
	if tr.Smooth {
		return "smooth triangle"
	}
	return "triangle"
}

// localIntersect is Möller–Trumbore
func (tr *Triangle) localIntersect(ray core.Ray) []localHit {
	dirCrossE2 := ray.Direction.Cross(tr.E2)
	det := tr.E1.Dot(dirCrossE2)
	if math.Abs(det) < core.Epsilon {
		return nil
	}

	f := 1.0 / det
	p1ToOrigin := ray.Origin.Subtract(tr.P1)
	u := f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return nil
	}

	originCrossE1 := p1ToOrigin.Cross(tr.E1)
	v := f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return nil
	}

	t := f * tr.E2.Dot(originCrossE1)
	return []localHit{{t: t, u: u, v: v, hasUV: true}}
}

func (tr *Triangle) localNormalAt(_ core.Tuple, hit Intersection) core.Tuple {
	if !tr.Smooth || !hit.HasUV {
		return tr.Normal
	}
	return tr.N2.Multiply(hit.U).
		Add(tr.N3.Multiply(hit.V)).
		Add(tr.N1.Multiply(1 - hit.U - hit.V)).
		Normalize()
}

func (tr *Triangle) localBounds() core.BoundingBox {
	return core.NewBoundingBoxFromPoints(tr.P1, tr.P2, tr.P3)
}
