package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere is the unit sphere centered at the origin
type Sphere struct{}

func (s *Sphere) Name() string { return "sphere" }

// localIntersect solves |O + tD|² = 1. A tangent ray reports the same t twice.
func (s *Sphere) localIntersect(ray core.Ray) []localHit {
	sphereToRay := ray.Origin.Subtract(core.Point(0, 0, 0))
	a := ray.Direction.MagnitudeSquared()
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.MagnitudeSquared() - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	return hitsAt((-b-sqrtD)/(2*a), (-b+sqrtD)/(2*a))
}

func (s *Sphere) localNormalAt(point core.Tuple, _ Intersection) core.Tuple {
	return point.Subtract(core.Point(0, 0, 0))
}

func (s *Sphere) localBounds() core.BoundingBox {
	r := 1 + core.Epsilon
	return core.NewBoundingBox(core.Point(-r, -r, -r), core.Point(r, r, r))
}
