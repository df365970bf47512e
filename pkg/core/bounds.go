package core

import "math"

// BoundingBox is an axis-aligned box given by its minimum and maximum corners
type BoundingBox struct {
	Min Tuple // Minimum corner
	Max Tuple // Maximum corner
}

// EmptyBoundingBox returns a box that contains nothing; adding any point or
// union with any box yields that point or box.
func EmptyBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: Point(inf, inf, inf),
		Max: Point(-inf, -inf, -inf),
	}
}

// NewBoundingBox creates a box from its corners
func NewBoundingBox(min, max Tuple) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// NewBoundingBoxFromPoints creates the smallest box containing all points
func NewBoundingBoxFromPoints(points ...Tuple) BoundingBox {
	box := EmptyBoundingBox()
	for _, p := range points {
		box = box.Add(p)
	}
	return box
}

// Add returns the box grown to contain p
func (b BoundingBox) Add(p Tuple) BoundingBox {
	return BoundingBox{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns a box that bounds both this box and another
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// IsValid returns true if min <= max on every axis
func (b BoundingBox) IsValid() bool {
	return b.Min.X <= b.Max.X &&
		b.Min.Y <= b.Max.Y &&
		b.Min.Z <= b.Max.Z
}

// Contains reports whether p lies inside the box, boundary included
func (b BoundingBox) Contains(p Tuple) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Corners returns the eight corner points of the box
func (b BoundingBox) Corners() [8]Tuple {
	lo, hi := b.Min, b.Max
	return [8]Tuple{
		Point(lo.X, lo.Y, lo.Z),
		Point(lo.X, hi.Y, lo.Z),
		Point(lo.X, lo.Y, hi.Z),
		Point(lo.X, hi.Y, hi.Z),
		Point(hi.X, lo.Y, lo.Z),
		Point(hi.X, hi.Y, lo.Z),
		Point(hi.X, lo.Y, hi.Z),
		Point(hi.X, hi.Y, hi.Z),
	}
}

// Transform maps all eight corners through m and bounds the result
func (b BoundingBox) Transform(m Matrix) BoundingBox {
	if !b.IsValid() {
		return b
	}
	result := EmptyBoundingBox()
	for _, corner := range b.Corners() {
		result = result.Add(m.transformPoint(corner))
	}
	return result
}

// Intersects tests the ray against the box using the slab method. Hits
// behind the ray origin count; the box is only used to reject subtrees.
func (b BoundingBox) Intersects(ray Ray) bool {
	if !b.IsValid() {
		return false
	}
	tMin, tMax := SlabIntersect(b.Min, b.Max, ray)
	return tMin <= tMax
}

// SlabIntersect returns the entry and exit t of the ray against the box
// spanned by min and max. The ray misses when tMin > tMax.
func SlabIntersect(min, max Tuple, ray Ray) (tMin, tMax float64) {
	xMin, xMax := CheckAxis(min.X, max.X, ray.Origin.X, ray.Direction.X)
	yMin, yMax := CheckAxis(min.Y, max.Y, ray.Origin.Y, ray.Direction.Y)
	zMin, zMax := CheckAxis(min.Z, max.Z, ray.Origin.Z, ray.Direction.Z)

	return math.Max(xMin, math.Max(yMin, zMin)), math.Min(xMax, math.Min(yMax, zMax))
}

// CheckAxis computes the entry and exit t of one slab. A direction component
// within Epsilon of zero yields ±∞: the whole line when the origin lies
// inside the slab, an empty interval otherwise.
func CheckAxis(min, max, origin, direction float64) (float64, float64) {
	if math.Abs(direction) < Epsilon {
		if origin >= min && origin <= max {
			return math.Inf(-1), math.Inf(1)
		}
		return math.Inf(1), math.Inf(-1)
	}

	tMin := (min - origin) / direction
	tMax := (max - origin) / direction
	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}

// Center returns the center point of the box
func (b BoundingBox) Center() Tuple {
	return Point((b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2, (b.Min.Z+b.Max.Z)/2)
}

// Size returns the extent of the box along each axis
func (b BoundingBox) Size() Tuple {
	return b.Max.Subtract(b.Min)
}

// IsFinite reports whether every bound is finite
func (b BoundingBox) IsFinite() bool {
	for _, v := range []float64{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (b BoundingBox) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Axis returns component i (0=X, 1=Y, 2=Z) of t
func (t Tuple) Axis(i int) float64 {
	switch i {
	case 0:
		return t.X
	case 1:
		return t.Y
	default:
		return t.Z
	}
}
