package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube is the axis-aligned cube spanning [-1, 1] on every axis
type Cube struct{}

func (c *Cube) Name() string { return "cube" }

func (c *Cube) localIntersect(ray core.Ray) []localHit {
	tMin, tMax := core.SlabIntersect(core.Point(-1, -1, -1), core.Point(1, 1, 1), ray)
	if tMin > tMax {
		return nil
	}
	return hitsAt(tMin, tMax)
}

// localNormalAt picks the face whose axis has the largest absolute component
func (c *Cube) localNormalAt(point core.Tuple, _ Intersection) core.Tuple {
	ax, ay, az := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	maxc := math.Max(ax, math.Max(ay, az))

	switch maxc {
	case ax:
		return core.Vector(point.X, 0, 0)
	case ay:
		return core.Vector(0, point.Y, 0)
	default:
		return core.Vector(0, 0, point.Z)
	}
}

func (c *Cube) localBounds() core.BoundingBox {
	return core.NewBoundingBox(core.Point(-1, -1, -1), core.Point(1, 1, 1))
}
