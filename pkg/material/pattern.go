package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Pattern provides a spatially-varying color. ColorAt receives a point already
// in pattern space.
type Pattern interface {
	ColorAt(point core.Tuple) core.Color
	Transform() core.Matrix
	InverseTransform() core.Matrix
	SetTransform(m core.Matrix)
}

// PatternAtObject evaluates p at a world-space point on an object whose
// world-to-object matrix is worldToObject
func PatternAtObject(p Pattern, worldToObject core.Matrix, worldPoint core.Tuple) core.Color {
	objectPoint := worldToObject.MultiplyTuple(worldPoint)
	return PatternAt(p, objectPoint)
}

// PatternAt evaluates p at an object-space point
func PatternAt(p Pattern, objectPoint core.Tuple) core.Color {
	return p.ColorAt(p.InverseTransform().MultiplyTuple(objectPoint))
}

// Transformable holds a pattern transform and its cached inverse
type Transformable struct {
	transform core.Matrix
	inverse   core.Matrix
}

func identityTransformable() Transformable {
	return Transformable{transform: core.Identity(), inverse: core.Identity()}
}

// Transform returns the pattern-to-object matrix
func (t *Transformable) Transform() core.Matrix {
	return t.transform
}

// InverseTransform returns the object-to-pattern matrix
func (t *Transformable) InverseTransform() core.Matrix {
	return t.inverse
}

// SetTransform sets the pattern transform. Panics if m is not invertible.
func (t *Transformable) SetTransform(m core.Matrix) {
	t.transform = m
	t.inverse = m.MustInverse()
}

// Solid provides a uniform color
type Solid struct {
	Transformable
	Color core.Color
}

// NewSolid creates a new solid color pattern
func NewSolid(color core.Color) *Solid {
	return &Solid{Transformable: identityTransformable(), Color: color}
}

// ColorAt returns the solid color regardless of position
func (s *Solid) ColorAt(point core.Tuple) core.Color {
	return s.Color
}

// Stripe alternates between A and B on unit intervals of x
type Stripe struct {
	Transformable
	A, B core.Color
}

// NewStripe creates a stripe pattern
func NewStripe(a, b core.Color) *Stripe {
	return &Stripe{Transformable: identityTransformable(), A: a, B: b}
}

func (s *Stripe) ColorAt(point core.Tuple) core.Color {
	if floorInt(point.X)%2 == 0 {
		return s.A
	}
	return s.B
}

// Gradient blends linearly from A to B over each unit interval of x
type Gradient struct {
	Transformable
	A, B core.Color
}

// NewGradient creates a gradient pattern
func NewGradient(a, b core.Color) *Gradient {
	return &Gradient{Transformable: identityTransformable(), A: a, B: b}
}

func (g *Gradient) ColorAt(point core.Tuple) core.Color {
	fraction := point.X - math.Floor(point.X)
	return g.A.Add(g.B.Subtract(g.A).Multiply(fraction))
}

// Ring alternates A and B in concentric rings around the y axis
type Ring struct {
	Transformable
	A, B core.Color
}

// NewRing creates a ring pattern
func NewRing(a, b core.Color) *Ring {
	return &Ring{Transformable: identityTransformable(), A: a, B: b}
}

func (r *Ring) ColorAt(point core.Tuple) core.Color {
	if floorInt(math.Sqrt(point.X*point.X+point.Z*point.Z))%2 == 0 {
		return r.A
	}
	return r.B
}

// Checkers is a 3D checkerboard of unit cubes
type Checkers struct {
	Transformable
	A, B core.Color
}

// NewCheckers creates a 3D checker pattern
func NewCheckers(a, b core.Color) *Checkers {
	return &Checkers{Transformable: identityTransformable(), A: a, B: b}
}

func (c *Checkers) ColorAt(point core.Tuple) core.Color {
	if (floorInt(point.X)+floorInt(point.Y)+floorInt(point.Z))%2 == 0 {
		return c.A
	}
	return c.B
}

// Blend averages two nested patterns, each evaluated through its own transform
type Blend struct {
	Transformable
	A, B Pattern
}

// NewBlend creates a blend of two patterns
func NewBlend(a, b Pattern) *Blend {
	return &Blend{Transformable: identityTransformable(), A: a, B: b}
}

func (b *Blend) ColorAt(point core.Tuple) core.Color {
	return PatternAt(b.A, point).Add(PatternAt(b.B, point)).Multiply(0.5)
}

func floorInt(v float64) int {
	return int(math.Floor(v))
}
