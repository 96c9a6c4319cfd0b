package hex

import "fmt"

// IntVector2D is an integer 2D vector in either user or canonical space.
type IntVector2D struct {
	X, Y int
}

// Add returns v+w.
func (v IntVector2D) Add(w IntVector2D) IntVector2D { return IntVector2D{v.X + w.X, v.Y + w.Y} }

// Sub returns v-w.
func (v IntVector2D) Sub(w IntVector2D) IntVector2D { return IntVector2D{v.X - w.X, v.Y - w.Y} }

// Scale returns v*k.
func (v IntVector2D) Scale(k int) IntVector2D { return IntVector2D{v.X * k, v.Y * k} }

// Transform applies the affine matrix m to v.
func (v IntVector2D) Transform(m IntMatrix2D) IntVector2D {
	return IntVector2D{
		X: floorDiv(v.X*m.M11+v.Y*m.M21+m.M31, m.norm()),
		Y: floorDiv(v.X*m.M12+v.Y*m.M22+m.M32, m.norm()),
	}
}

func (v IntVector2D) String() string { return fmt.Sprintf("(%d,%d)", v.X, v.Y) }

// IntMatrix2D is an integer affine transform in row-vector convention:
//
//	x' = (x*M11 + y*M21 + M31) / Norm
//	y' = (x*M12 + y*M22 + M32) / Norm
//
// Division floors so transforms stay exact for negative (off-board) inputs.
// A zero Norm is treated as 1.
type IntMatrix2D struct {
	M11, M12 int
	M21, M22 int
	M31, M32 int
	Norm     int
}

// Identity is the identity transform.
var Identity = IntMatrix2D{M11: 1, M22: 1, Norm: 1}

// NewLinear returns the linear (translation-free, unnormalized) matrix
// mapping (1,0) to (m11,m12) and (0,1) to (m21,m22).
func NewLinear(m11, m12, m21, m22 int) IntMatrix2D {
	return IntMatrix2D{M11: m11, M12: m12, M21: m21, M22: m22, Norm: 1}
}

func (m IntMatrix2D) norm() int {
	if m.Norm == 0 {
		return 1
	}
	return m.Norm
}

// Determinant returns the determinant of the linear part, ignoring Norm.
func (m IntMatrix2D) Determinant() int {
	return m.M11*m.M22 - m.M12*m.M21
}

// Mul returns the transform that applies m first and then n.
// Only defined for unnormalized matrices; Norm of the result is the product.
func (m IntMatrix2D) Mul(n IntMatrix2D) IntMatrix2D {
	return IntMatrix2D{
		M11:  m.M11*n.M11 + m.M12*n.M21,
		M12:  m.M11*n.M12 + m.M12*n.M22,
		M21:  m.M21*n.M11 + m.M22*n.M21,
		M22:  m.M21*n.M12 + m.M22*n.M22,
		M31:  m.M31*n.M11 + m.M32*n.M21 + n.M31*m.norm(),
		M32:  m.M31*n.M12 + m.M32*n.M22 + n.M32*m.norm(),
		Norm: m.norm() * n.norm(),
	}
}

// Inverse returns the integer inverse of a unimodular linear matrix.
// ok is false when m has a translation, a Norm other than 1, or |det| != 1.
func (m IntMatrix2D) Inverse() (inv IntMatrix2D, ok bool) {
	if m.norm() != 1 || m.M31 != 0 || m.M32 != 0 {
		return IntMatrix2D{}, false
	}
	det := m.Determinant()
	if det != 1 && det != -1 {
		return IntMatrix2D{}, false
	}
	return IntMatrix2D{
		M11:  m.M22 * det,
		M12:  -m.M12 * det,
		M21:  -m.M21 * det,
		M22:  m.M11 * det,
		Norm: 1,
	}, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
