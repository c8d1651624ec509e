// Package affine provides 4x4 affine transform matrices for 3D geometry.
//
// A Matrix combines a rotation and a translation in homogeneous
// coordinates. Matrices are immutable values: every operation returns a
// new Matrix and never modifies its operands. The arithmetic is
// delegated to gonum's dense matrix implementation.
//
// # Composition order
//
// Mul follows the usual matrix product: m.Mul(n) computes m*n, so the
// transform n is applied to a point first. Compose constructs a matrix
// from a list of steps applied in argument order (first argument acts
// on the point first), which matches how device joint transforms are
// described (translate, then rotate).
//
// # Conventions
//
// Rotations take degrees and follow the right-hand rule: a positive
// angle rotates counter-clockwise when looking down the axis toward
// the origin. All arithmetic is double precision.
package affine

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a 4x4 affine transform in homogeneous coordinates.
// The zero value is not usable - use Identity, Translation, one of the
// rotation constructors, or FromElements.
type Matrix struct {
	d *mat.Dense
}

// Identity returns the identity transform.
func Identity() Matrix {
	return FromElements([16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// FromElements builds a matrix from 16 row-major elements.
func FromElements(e [16]float64) Matrix {
	return Matrix{d: mat.NewDense(4, 4, e[:])}
}

// Translation returns a transform that moves points by (x, y, z).
func Translation(x, y, z float64) Matrix {
	return FromElements([16]float64{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	})
}

// RotationX returns a rotation about the X axis by deg degrees.
func RotationX(deg float64) Matrix {
	s, c := sincosDeg(deg)
	return FromElements([16]float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
}

// RotationY returns a rotation about the Y axis by deg degrees.
func RotationY(deg float64) Matrix {
	s, c := sincosDeg(deg)
	return FromElements([16]float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})
}

// RotationZ returns a rotation about the Z axis by deg degrees.
func RotationZ(deg float64) Matrix {
	s, c := sincosDeg(deg)
	return FromElements([16]float64{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

func sincosDeg(deg float64) (sin, cos float64) {
	// Exact values at the quadrant angles keep pure 90-degree device
	// rotations free of floating noise.
	switch math.Mod(deg, 360) {
	case 0:
		return 0, 1
	case 90, -270:
		return 1, 0
	case 180, -180:
		return 0, -1
	case 270, -90:
		return -1, 0
	}
	return math.Sincos(deg * math.Pi / 180)
}

// Compose builds a single matrix from steps applied in argument order:
// the first step acts on a point first. Compose() returns the identity.
func Compose(steps ...Matrix) Matrix {
	out := Identity()
	for _, s := range steps {
		out = out.Mul(s)
	}
	return out
}

// Mul returns the matrix product m*n. When the result is applied to a
// point, n acts first and m second.
func (m Matrix) Mul(n Matrix) Matrix {
	var out mat.Dense
	out.Mul(m.d, n.d)
	return Matrix{d: &out}
}

// Invert returns the inverse transform. It returns an error if the
// matrix is singular, which cannot happen for products of rotations
// and translations but can for caller-supplied element data.
func (m Matrix) Invert() (Matrix, error) {
	var out mat.Dense
	if err := out.Inverse(m.d); err != nil {
		return Matrix{}, fmt.Errorf("invert: %w", err)
	}
	return Matrix{d: &out}, nil
}

// At returns the element at row i, column j.
func (m Matrix) At(i, j int) float64 { return m.d.At(i, j) }

// Rows returns the matrix as four rows of four elements.
func (m Matrix) Rows() [4][4]float64 {
	var r [4][4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m.d.At(i, j)
		}
	}
	return r
}

// Elements returns the 16 row-major elements.
func (m Matrix) Elements() [16]float64 {
	var e [16]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			e[4*i+j] = m.d.At(i, j)
		}
	}
	return e
}

// ApplyPoint transforms the point p (homogeneous coordinate 1).
func (m Matrix) ApplyPoint(p [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m.d.At(i, 0)*p[0] + m.d.At(i, 1)*p[1] + m.d.At(i, 2)*p[2] + m.d.At(i, 3)
	}
	return out
}

// ApproxEqual reports whether every element of m and n differs by at
// most tol.
func (m Matrix) ApproxEqual(n Matrix, tol float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m.d.At(i, j)-n.d.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

// IsIdentity reports whether m is the identity within tol.
func (m Matrix) IsIdentity(tol float64) bool {
	return m.ApproxEqual(Identity(), tol)
}

// Clone returns an independent copy of m.
func (m Matrix) Clone() Matrix {
	var out mat.Dense
	out.CloneFrom(m.d)
	return Matrix{d: &out}
}

// String formats the matrix as four lines of aligned elements.
func (m Matrix) String() string {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			fmt.Fprintf(&b, "% 10.4f", m.d.At(i, j))
			if j < 3 {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
