package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a unit-radius cylinder around the y axis, truncated to
// Minimum < y < Maximum. Closed adds flat end caps.
type Cylinder struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCylinderShape creates a cylinder spanning (min, max) on y
func NewCylinderShape(min, max float64, closed bool) (*Cylinder, error) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return nil, fmt.Errorf("cylinder extent must be a number, got (%f, %f)", min, max)
	}
	if min > max {
		return nil, fmt.Errorf("cylinder minimum must not exceed maximum, got (%f, %f)", min, max)
	}
	return &Cylinder{Minimum: min, Maximum: max, Closed: closed}, nil
}

func (c *Cylinder) Name() string { return "cylinder" }

func (c *Cylinder) localIntersect(ray core.Ray) []localHit {
	a := ray.Direction.X*ray.Direction.X + ray.Direction.Z*ray.Direction.Z

	// Parallel to the y axis: only the caps can be hit
	if math.Abs(a) < core.Epsilon {
		return c.intersectCaps(ray, nil)
	}

	b := 2*ray.Origin.X*ray.Direction.X + 2*ray.Origin.Z*ray.Direction.Z
	cc := ray.Origin.X*ray.Origin.X + ray.Origin.Z*ray.Origin.Z - 1

	disc := b*b - 4*a*cc
	if disc < 0 {
		return nil
	}

	sqrtD := math.Sqrt(disc)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)

	hits := make([]localHit, 0, 4)
	for _, t := range [2]float64{t0, t1} {
		y := ray.Origin.Y + t*ray.Direction.Y
		if c.Minimum < y && y < c.Maximum {
			hits = append(hits, localHit{t: t})
		}
	}
	return c.intersectCaps(ray, hits)
}

func (c *Cylinder) intersectCaps(ray core.Ray, hits []localHit) []localHit {
	if !c.Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return hits
	}
	for _, end := range [2]float64{c.Minimum, c.Maximum} {
		t := (end - ray.Origin.Y) / ray.Direction.Y
		if withinRadius(ray, t, 1) {
			hits = append(hits, localHit{t: t})
		}
	}
	return hits
}

func (c *Cylinder) localNormalAt(point core.Tuple, _ Intersection) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z

	if dist < 1 && point.Y >= c.Maximum-core.Epsilon {
		return core.Vector(0, 1, 0)
	}
	if dist < 1 && point.Y <= c.Minimum+core.Epsilon {
		return core.Vector(0, -1, 0)
	}
	return core.Vector(point.X, 0, point.Z)
}

func (c *Cylinder) localBounds() core.BoundingBox {
	return core.NewBoundingBox(core.Point(-1, c.Minimum, -1), core.Point(1, c.Maximum, 1))
}

// withinRadius reports whether the ray at t lies within radius of the y axis.
// Points on the rim count as inside.
func withinRadius(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X + t*ray.Direction.X
	z := ray.Origin.Z + t*ray.Direction.Z
	return x*x+z*z <= radius*radius+core.Epsilon
}
