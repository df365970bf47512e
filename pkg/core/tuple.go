package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Epsilon is the single tolerance used for every near-zero and on-boundary
// decision in the tracer.
const Epsilon = 1e-5

// ApproxEqual reports whether a and b are within Epsilon of each other
func ApproxEqual(a, b float64) bool {
	return scalar.EqualWithinAbs(a, b, Epsilon)
}

// Tuple is a homogeneous 4-component coordinate. Points have W=1, vectors W=0.
type Tuple struct {
	X, Y, Z, W float64
}

// Point creates a tuple with w=1
func Point(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 1}
}

// Vector creates a tuple with w=0
func Vector(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 0}
}

// IsPoint reports whether the tuple is a point
func (t Tuple) IsPoint() bool {
	return t.W == 1
}

// IsVector reports whether the tuple is a vector
func (t Tuple) IsVector() bool {
	return t.W == 0
}

// Add returns the component-wise sum
func (t Tuple) Add(other Tuple) Tuple {
	return Tuple{t.X + other.X, t.Y + other.Y, t.Z + other.Z, t.W + other.W}
}

// Subtract returns the component-wise difference
func (t Tuple) Subtract(other Tuple) Tuple {
	return Tuple{t.X - other.X, t.Y - other.Y, t.Z - other.Z, t.W - other.W}
}

// Negate returns the negated tuple
func (t Tuple) Negate() Tuple {
	return Tuple{-t.X, -t.Y, -t.Z, -t.W}
}

// Multiply returns the tuple scaled by a scalar
func (t Tuple) Multiply(scalar float64) Tuple {
	return Tuple{t.X * scalar, t.Y * scalar, t.Z * scalar, t.W * scalar}
}

// Divide returns the tuple divided by a scalar
func (t Tuple) Divide(scalar float64) Tuple {
	return Tuple{t.X / scalar, t.Y / scalar, t.Z / scalar, t.W / scalar}
}

// Dot returns the 4-component dot product
func (t Tuple) Dot(other Tuple) float64 {
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z + t.W*other.W
}

// Cross returns the cross product of two vectors. Crossing a point is a
// programming error and panics.
func (t Tuple) Cross(other Tuple) Tuple {
	if !ApproxEqual(t.W, 0) || !ApproxEqual(other.W, 0) {
		panic(fmt.Sprintf("core: cross product of non-vectors %v and %v", t, other))
	}
	return Vector(
		t.Y*other.Z-t.Z*other.Y,
		t.Z*other.X-t.X*other.Z,
		t.X*other.Y-t.Y*other.X,
	)
}

// Magnitude returns the length of the tuple
func (t Tuple) Magnitude() float64 {
	return math.Sqrt(t.MagnitudeSquared())
}

// MagnitudeSquared returns the squared length of the tuple
func (t Tuple) MagnitudeSquared() float64 {
	return t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W
}

// Normalize returns a unit tuple in the same direction
func (t Tuple) Normalize() Tuple {
	length := t.Magnitude()
	if length == 0 {
		return t
	}
	return t.Divide(length)
}

// Reflect returns the vector reflected about normal
func (t Tuple) Reflect(normal Tuple) Tuple {
	return t.Subtract(normal.Multiply(2 * t.Dot(normal)))
}

// Min returns the component-wise minimum, keeping this tuple's w
func (t Tuple) Min(other Tuple) Tuple {
	return Tuple{math.Min(t.X, other.X), math.Min(t.Y, other.Y), math.Min(t.Z, other.Z), t.W}
}

// Max returns the component-wise maximum, keeping this tuple's w
func (t Tuple) Max(other Tuple) Tuple {
	return Tuple{math.Max(t.X, other.X), math.Max(t.Y, other.Y), math.Max(t.Z, other.Z), t.W}
}

// ApproxEqual compares all four components within Epsilon
func (t Tuple) ApproxEqual(other Tuple) bool {
	return ApproxEqual(t.X, other.X) &&
		ApproxEqual(t.Y, other.Y) &&
		ApproxEqual(t.Z, other.Z) &&
		ApproxEqual(t.W, other.W)
}

func (t Tuple) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", t.X, t.Y, t.Z, t.W)
}
