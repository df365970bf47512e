package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Shape is a primitive defined in its own local space. Callers transform rays
// into local space before intersecting.
type Shape interface {
	// Name identifies the primitive kind for inspection and logging
	Name() string

	localIntersect(ray core.Ray) []localHit
	localNormalAt(point core.Tuple, hit Intersection) core.Tuple
	localBounds() core.BoundingBox
}

// localHit is a single primitive intersection in local space. Triangles also
// report barycentric u and v.
type localHit struct {
	t, u, v float64
	hasUV   bool
}

func hitsAt(ts ...float64) []localHit {
	hits := make([]localHit, len(ts))
	for i, t := range ts {
		hits[i] = localHit{t: t}
	}
	return hits
}
