package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite xz plane through the origin
type Plane struct{}

func (p *Plane) Name() string { return "plane" }

func (p *Plane) localIntersect(ray core.Ray) []localHit {
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		// Parallel or coplanar
		return nil
	}
	return hitsAt(-ray.Origin.Y / ray.Direction.Y)
}

func (p *Plane) localNormalAt(core.Tuple, Intersection) core.Tuple {
	return core.Vector(0, 1, 0)
}

func (p *Plane) localBounds() core.BoundingBox {
	inf := math.Inf(1)
	return core.NewBoundingBox(core.Point(-inf, 0, -inf), core.Point(inf, 0, inf))
}
