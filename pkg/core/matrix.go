package core

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a 4x4 row-major transform matrix
type Matrix [4][4]float64

// Identity returns the 4x4 identity matrix
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// NewMatrix creates a matrix from its rows
func NewMatrix(rows [4][4]float64) Matrix {
	return Matrix(rows)
}

// At returns the element at row r, column c
func (m Matrix) At(r, c int) float64 {
	return m[r][c]
}

// Multiply returns the matrix product m·other
func (m Matrix) Multiply(other Matrix) Matrix {
	var result Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[r][c] = m[r][0]*other[0][c] +
				m[r][1]*other[1][c] +
				m[r][2]*other[2][c] +
				m[r][3]*other[3][c]
		}
	}
	return result
}

// MultiplyTuple applies the matrix to a tuple
func (m Matrix) MultiplyTuple(t Tuple) Tuple {
	return Tuple{
		X: m[0][0]*t.X + m[0][1]*t.Y + m[0][2]*t.Z + m[0][3]*t.W,
		Y: m[1][0]*t.X + m[1][1]*t.Y + m[1][2]*t.Z + m[1][3]*t.W,
		Z: m[2][0]*t.X + m[2][1]*t.Y + m[2][2]*t.Z + m[2][3]*t.W,
		W: m[3][0]*t.X + m[3][1]*t.Y + m[3][2]*t.Z + m[3][3]*t.W,
	}
}

// Scale returns every element multiplied by s
func (m Matrix) Scale(s float64) Matrix {
	var result Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[r][c] = m[r][c] * s
		}
	}
	return result
}

// Transpose returns the transposed matrix
func (m Matrix) Transpose() Matrix {
	var result Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[c][r] = m[r][c]
		}
	}
	return result
}

func (m Matrix) dense() *mat.Dense {
	data := make([]float64, 0, 16)
	for r := 0; r < 4; r++ {
		data = append(data, m[r][:]...)
	}
	return mat.NewDense(4, 4, data)
}

func matrixFromDense(d *mat.Dense) Matrix {
	var result Matrix
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			result[r][c] = d.At(r, c)
		}
	}
	return result
}

// Determinant returns the determinant of the matrix
func (m Matrix) Determinant() float64 {
	return mat.Det(m.dense())
}

// Inverse returns the inverse of the matrix. The second result is false when
// the matrix is singular or too ill-conditioned to invert reliably.
func (m Matrix) Inverse() (Matrix, bool) {
	if m.Determinant() == 0 {
		return Matrix{}, false
	}
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Matrix{}, false
	}
	result := matrixFromDense(&inv)
	if m[3] == [4]float64{0, 0, 0, 1} {
		// The inverse of an affine transform is affine; drop rounding noise
		// so vectors keep w=0 exactly.
		result[3] = [4]float64{0, 0, 0, 1}
	}
	return result, true
}

// MustInverse returns the inverse of the matrix and panics when it has none.
// Scene construction with a singular transform is a programming error.
func (m Matrix) MustInverse() Matrix {
	inv, ok := m.Inverse()
	if !ok {
		panic(fmt.Sprintf("core: matrix is not invertible:\n%v", m))
	}
	return inv
}

// ApproxEqual compares every element within Epsilon
func (m Matrix) ApproxEqual(other Matrix) bool {
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if !ApproxEqual(m[r][c], other[r][c]) {
				return false
			}
		}
	}
	return true
}

// IsIdentity reports whether the matrix is the identity within Epsilon
func (m Matrix) IsIdentity() bool {
	return m.ApproxEqual(Identity())
}

func (m Matrix) String() string {
	var sb strings.Builder
	for r := 0; r < 4; r++ {
		fmt.Fprintf(&sb, "| %8.5f %8.5f %8.5f %8.5f |", m[r][0], m[r][1], m[r][2], m[r][3])
		if r < 3 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// transformPoint applies m to p treating 0·∞ as 0, so infinite bounds stay
// infinite instead of turning into NaN.
func (m Matrix) transformPoint(p Tuple) Tuple {
	in := [4]float64{p.X, p.Y, p.Z, p.W}
	var out [4]float64
	for r := 0; r < 4; r++ {
		sum := 0.0
		for c := 0; c < 4; c++ {
			if m[r][c] == 0 || in[c] == 0 {
				continue
			}
			sum += m[r][c] * in[c]
		}
		if math.IsNaN(sum) {
			// +∞ and −∞ met in the same row; the opposite corners carry the
			// infinite extent on this axis.
			sum = 0
		}
		out[r] = sum
	}
	return Tuple{out[0], out[1], out[2], out[3]}
}
