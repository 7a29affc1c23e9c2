package core

import (
	"math"
	"sync"
)

// Matrix is a 4x4 affine transform in row-major order.
type Matrix [4][4]float64

// Identity returns the identity matrix
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Multiply returns the matrix product m * other
func (m Matrix) Multiply(other Matrix) Matrix {
	var result Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[row][col] = m[row][0]*other[0][col] +
				m[row][1]*other[1][col] +
				m[row][2]*other[2][col] +
				m[row][3]*other[3][col]
		}
	}
	return result
}

// MultiplyTuple applies the transform to a tuple
func (m Matrix) MultiplyTuple(t Tuple) Tuple {
	return Tuple{
		X: m[0][0]*t.X + m[0][1]*t.Y + m[0][2]*t.Z + m[0][3]*t.W,
		Y: m[1][0]*t.X + m[1][1]*t.Y + m[1][2]*t.Z + m[1][3]*t.W,
		Z: m[2][0]*t.X + m[2][1]*t.Y + m[2][2]*t.Z + m[2][3]*t.W,
		W: m[3][0]*t.X + m[3][1]*t.Y + m[3][2]*t.Z + m[3][3]*t.W,
	}
}

// Transpose returns the transpose of the matrix
func (m Matrix) Transpose() Matrix {
	var result Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			result[col][row] = m[row][col]
		}
	}
	return result
}

// submatrix returns the 3x3 matrix obtained by removing one row and column.
// Minors and cofactors of the 3x3 case recurse into 2x2 determinants.
func (m Matrix) submatrix(row, col int) [3][3]float64 {
	var sub [3][3]float64
	sr := 0
	for r := 0; r < 4; r++ {
		if r == row {
			continue
		}
		sc := 0
		for c := 0; c < 4; c++ {
			if c == col {
				continue
			}
			sub[sr][sc] = m[r][c]
			sc++
		}
		sr++
	}
	return sub
}

func determinant3(m [3][3]float64) float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// cofactor returns the signed minor for the given row and column
func (m Matrix) cofactor(row, col int) float64 {
	minor := determinant3(m.submatrix(row, col))
	if (row+col)%2 == 1 {
		return -minor
	}
	return minor
}

// Determinant returns the determinant via cofactor expansion along row 0
func (m Matrix) Determinant() float64 {
	det := 0.0
	for col := 0; col < 4; col++ {
		det += m[0][col] * m.cofactor(0, col)
	}
	return det
}

// Inverse returns the inverse of the matrix. Panics if the matrix is
// singular, which indicates a broken transform built by the caller.
func (m Matrix) Inverse() Matrix {
	det := m.Determinant()
	if det == 0 {
		panic("core: cannot invert singular matrix")
	}

	var result Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			// Transposed assignment folds the adjugate transpose into the loop
			result[col][row] = m.cofactor(row, col) / det
		}
	}
	return result
}

// Equals reports whether two matrices are equal within Epsilon
func (m Matrix) Equals(other Matrix) bool {
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			if math.Abs(m[row][col]-other[row][col]) > Epsilon {
				return false
			}
		}
	}
	return true
}

// Transform pairs a matrix with its lazily computed inverse and
// inverse-transpose. Inversion by cofactor expansion is expensive and the
// same transform is queried for every ray, so both are computed once and
// cached. Safe for concurrent readers.
type Transform struct {
	matrix Matrix

	once         sync.Once
	inverse      Matrix
	invTranspose Matrix
}

// NewTransform creates a transform around the given matrix
func NewTransform(m Matrix) *Transform {
	return &Transform{matrix: m}
}

// Matrix returns the underlying matrix
func (t *Transform) Matrix() Matrix {
	return t.matrix
}

// Inverse returns the cached inverse, computing it on first use
func (t *Transform) Inverse() Matrix {
	t.memoize()
	return t.inverse
}

// InverseTranspose returns the cached inverse-transpose, used to carry
// normals between object and world space
func (t *Transform) InverseTranspose() Matrix {
	t.memoize()
	return t.invTranspose
}

func (t *Transform) memoize() {
	t.once.Do(func() {
		t.inverse = t.matrix.Inverse()
		t.invTranspose = t.inverse.Transpose()
	})
}
