package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is the double-napped cone x² + z² = y², truncated to
// Minimum < y < Maximum. Closed adds flat caps of radius |y|.
type Cone struct {
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewConeShape creates a cone spanning (min, max) on y
func NewConeShape(min, max float64, closed bool) (*Cone, error) {
	if math.IsNaN(min) || math.IsNaN(max) {
		return nil, fmt.Errorf("cone extent must be a number, got (%f, %f)", min, max)
	}
	if min > max {
		return nil, fmt.Errorf("cone minimum must not exceed maximum, got (%f, %f)", min, max)
	}
	return &Cone{Minimum: min, Maximum: max, Closed: closed}, nil
}

func (c *Cone) Name() string { return "cone" }

func (c *Cone) localIntersect(ray core.Ray) []localHit {
	o, d := ray.Origin, ray.Direction
	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	if math.Abs(a) < core.Epsilon && math.Abs(b) < core.Epsilon {
		return nil
	}

	hits := make([]localHit, 0, 4)

	if math.Abs(a) < core.Epsilon {
		// Parallel to one of the nappes: a single linear root
		hits = c.appendInRange(ray, hits, -cc/(2*b))
		return c.intersectCaps(ray, hits)
	}

	disc := b*b - 4*a*cc
	if disc < 0 {
		return nil
	}

	sqrtD := math.Sqrt(disc)
	hits = c.appendInRange(ray, hits, (-b-sqrtD)/(2*a))
	hits = c.appendInRange(ray, hits, (-b+sqrtD)/(2*a))
	return c.intersectCaps(ray, hits)
}

func (c *Cone) appendInRange(ray core.Ray, hits []localHit, t float64) []localHit {
	y := ray.Origin.Y + t*ray.Direction.Y
	if c.Minimum < y && y < c.Maximum {
		hits = append(hits, localHit{t: t})
	}
	return hits
}

func (c *Cone) intersectCaps(ray core.Ray, hits []localHit) []localHit {
	if !c.Closed || math.Abs(ray.Direction.Y) < core.Epsilon {
		return hits
	}
	for _, end := range [2]float64{c.Minimum, c.Maximum} {
		t := (end - ray.Origin.Y) / ray.Direction.Y
		if withinRadius(ray, t, math.Abs(end)) {
			hits = append(hits, localHit{t: t})
		}
	}
	return hits
}

func (c *Cone) localNormalAt(point core.Tuple, _ Intersection) core.Tuple {
	dist := point.X*point.X + point.Z*point.Z
	y2 := point.Y * point.Y

	if dist < y2 && point.Y >= c.Maximum-core.Epsilon {
		return core.Vector(0, 1, 0)
	}
	if dist < y2 && point.Y <= c.Minimum+core.Epsilon {
		return core.Vector(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.Vector(point.X, y, point.Z)
}

func (c *Cone) localBounds() core.BoundingBox {
	r := math.Max(math.Abs(c.Minimum), math.Abs(c.Maximum))
	return core.NewBoundingBox(core.Point(-r, c.Minimum, -r), core.Point(r, c.Maximum, r))
}
