package core

import "math"

// Translation returns a matrix moving points by (x, y, z)
func Translation(x, y, z float64) Matrix {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Scaling returns a matrix scaling by (x, y, z)
func Scaling(x, y, z float64) Matrix {
	m := Identity()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// RotationX rotates around the x axis by r radians
func RotationX(r float64) Matrix {
	sin, cos := math.Sincos(r)
	m := Identity()
	m[1][1] = cos
	m[1][2] = -sin
	m[2][1] = sin
	m[2][2] = cos
	return m
}

// RotationY rotates around the y axis by r radians
func RotationY(r float64) Matrix {
	sin, cos := math.Sincos(r)
	m := Identity()
	m[0][0] = cos
	m[0][2] = sin
	m[2][0] = -sin
	m[2][2] = cos
	return m
}

// RotationZ rotates around the z axis by r radians
func RotationZ(r float64) Matrix {
	sin, cos := math.Sincos(r)
	m := Identity()
	m[0][0] = cos
	m[0][1] = -sin
	m[1][0] = sin
	m[1][1] = cos
	return m
}

// Shearing moves each component in proportion to the other two.
// xy is how much x moves in proportion to y, and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	m := Identity()
	m[0][1] = xy
	m[0][2] = xz
	m[1][0] = yx
	m[1][2] = yz
	m[2][0] = zx
	m[2][1] = zy
	return m
}

// Chain composes transforms given in the order they are applied, so
// Chain(a, b, c) == c·b·a.
func Chain(transforms ...Matrix) Matrix {
	result := Identity()
	for _, t := range transforms {
		result = t.Multiply(result)
	}
	return result
}

// ViewTransform orients the world relative to an eye at from looking at to
func ViewTransform(from, to, up Tuple) Matrix {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := Matrix{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}
	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z))
}
