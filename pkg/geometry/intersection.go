package geometry

import (
	"cmp"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Intersection records one crossing of a ray with a leaf. U and V are the
// barycentric coordinates of triangle hits.
type Intersection struct {
	T      float64
	U, V   float64
	HasUV  bool
	Object SimpleObject
}

// NewIntersection creates an intersection at t with the given object view
func NewIntersection(t float64, object SimpleObject) Intersection {
	return Intersection{T: t, Object: object}
}

// NewIntersectionUV creates a triangle intersection carrying (u, v)
func NewIntersectionUV(t, u, v float64, object SimpleObject) Intersection {
	return Intersection{T: t, U: u, V: v, HasUV: true, Object: object}
}

// Same reports whether both records are the same crossing of the same leaf
func (i Intersection) Same(other Intersection) bool {
	return core.ApproxEqual(i.T, other.T) && i.Object.Equal(other.Object)
}

// Intersections is a list of intersections, usually sorted by t
type Intersections []Intersection

// Sort orders the intersections by increasing t, keeping ties in order
func (xs Intersections) Sort() {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}

// Hit returns the intersection with the smallest non-negative t
func (xs Intersections) Hit() (Intersection, bool) {
	best := -1
	for i, x := range xs {
		if x.T < 0 {
			continue
		}
		if best < 0 || x.T < xs[best].T {
			best = i
		}
	}
	if best < 0 {
		return Intersection{}, false
	}
	return xs[best], true
}
