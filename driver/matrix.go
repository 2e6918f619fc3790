package driver

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D is an affine transform:
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{A: 1, D: 1}

// FlipY mirrors the y axis around the origin. It is the base
// transform when mapping SVG user space (y down) onto a PDF
// content stream (y up).
var FlipY = Matrix2D{A: 1, D: -1}

// Mult returns a.Mult(b), the transform applying b first, then a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate composes a translation by (x, y) after a.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, D: 1, E: x, F: y})
}

// Scale composes a scale by (x, y) after a.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{A: x, D: y})
}

// Rotate composes a rotation of `angle` radians after a.
func (a Matrix2D) Rotate(angle float64) Matrix2D {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return a.Mult(Matrix2D{A: cos, B: sin, C: -sin, D: cos})
}

// SkewX composes an x-skew of `angle` radians after a.
func (a Matrix2D) SkewX(angle float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, D: 1, C: math.Tan(angle)})
}

// SkewY composes a y-skew of `angle` radians after a.
func (a Matrix2D) SkewY(angle float64) Matrix2D {
	return a.Mult(Matrix2D{A: 1, D: 1, B: math.Tan(angle)})
}

// Apply transforms the point (x, y).
func (a Matrix2D) Apply(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TrPoint transforms a fixed point.
func (a Matrix2D) TrPoint(p fixed.Point26_6) fixed.Point26_6 {
	x, y := a.Apply(float64(p.X)/64, float64(p.Y)/64)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}
