// Package plane provides the small 2D vector and matrix primitives shared
// by every stage of the projection pipeline. Points carry no unit of their
// own: the tangent plane uses radians, the focal plane millimetres, and
// detectors pixels. The package using a Point decides what it means.
package plane

import "math"

// Point is a position on a 2D plane.
type Point struct {
	X, Y float64
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Norm returns the Euclidean norm of p.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Mat2 is a 2x2 matrix in row-major order:
//
//	| A  B |
//	| C  D |
type Mat2 struct {
	A, B, C, D float64
}

// Identity returns the identity matrix.
func Identity() Mat2 {
	return Mat2{A: 1, D: 1}
}

// Rotation returns the matrix rotating a point counter-clockwise by theta
// radians.
func Rotation(theta float64) Mat2 {
	sin, cos := math.Sincos(theta)
	return Mat2{A: cos, B: -sin, C: sin, D: cos}
}

// Apply returns m * p treating p as a column vector.
func (m Mat2) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.C*p.X + m.D*p.Y,
	}
}

// Mul returns the matrix product m * other.
func (m Mat2) Mul(other Mat2) Mat2 {
	return Mat2{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
	}
}

// Scale returns m with every element multiplied by s.
func (m Mat2) Scale(s float64) Mat2 {
	return Mat2{A: m.A * s, B: m.B * s, C: m.C * s, D: m.D * s}
}

// Det returns the determinant of m.
func (m Mat2) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Inverse returns the inverse of m. The second return value is false when
// the matrix is singular or numerically too close to singular to invert.
func (m Mat2) Inverse() (Mat2, bool) {
	det := m.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Mat2{}, false
	}
	inv := 1 / det
	return Mat2{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
	}, true
}
