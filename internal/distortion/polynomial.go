package distortion

import (
	"fmt"
	"math"

	"warpsim/internal/plane"
)

// Polynomial adds a bivariate polynomial correction to each axis:
//
//	x' = x + sum cx[k] * x^i * y^j
//	y' = y + sum cy[k] * x^i * y^j
//
// over all terms with total degree i+j <= Degree. Terms are ordered by
// total degree, then by descending power of x within a degree:
// (0,0), (1,0), (0,1), (2,0), (1,1), (0,2), ...
//
// With all coefficients zero the model is the exact identity.
type Polynomial struct {
	degree int
	terms  []term
	cx, cy []float64
}

type term struct {
	i, j int
}

// TermCount returns the number of coefficients each axis of a polynomial
// of the given degree requires.
func TermCount(degree int) int {
	return (degree + 1) * (degree + 2) / 2
}

// NewPolynomial builds a polynomial distortion model. The coefficient
// slices must each carry exactly TermCount(degree) finite values.
func NewPolynomial(degree int, cx, cy []float64) (*Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: negative degree %d", ErrBadCoefficients, degree)
	}
	want := TermCount(degree)
	if len(cx) != want || len(cy) != want {
		return nil, fmt.Errorf("%w: degree %d needs %d terms per axis, got %d/%d",
			ErrBadCoefficients, degree, want, len(cx), len(cy))
	}
	for _, c := range append(append([]float64{}, cx...), cy...) {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient", ErrBadCoefficients)
		}
	}
	terms := make([]term, 0, want)
	for t := 0; t <= degree; t++ {
		for i := t; i >= 0; i-- {
			terms = append(terms, term{i: i, j: t - i})
		}
	}
	p := &Polynomial{
		degree: degree,
		terms:  terms,
		cx:     append([]float64{}, cx...),
		cy:     append([]float64{}, cy...),
	}
	return p, nil
}

// Degree returns the total degree the model was built with.
func (p *Polynomial) Degree() int { return p.degree }

// Apply evaluates the distortion for a batch of points.
func (p *Polynomial) Apply(pts []plane.Point) []plane.Point {
	out := make([]plane.Point, len(pts))
	xp := make([]float64, p.degree+1)
	yp := make([]float64, p.degree+1)
	for n, pt := range pts {
		powers(xp, pt.X)
		powers(yp, pt.Y)
		dx, dy := 0.0, 0.0
		for k, t := range p.terms {
			b := xp[t.i] * yp[t.j]
			dx += p.cx[k] * b
			dy += p.cy[k] * b
		}
		out[n] = plane.Point{X: pt.X + dx, Y: pt.Y + dy}
	}
	return out
}

// Invert solves the forward map per point by Newton iteration.
func (p *Polynomial) Invert(pts []plane.Point) ([]plane.Point, []bool) {
	return newtonInvert(p.applyOne, p.jacobianOne, pts)
}

// Jacobian returns the analytic derivative of Apply at each point.
func (p *Polynomial) Jacobian(pts []plane.Point) []plane.Mat2 {
	out := make([]plane.Mat2, len(pts))
	for n, pt := range pts {
		out[n] = p.jacobianOne(pt)
	}
	return out
}

func (p *Polynomial) applyOne(pt plane.Point) plane.Point {
	res := p.Apply([]plane.Point{pt})
	return res[0]
}

func (p *Polynomial) jacobianOne(pt plane.Point) plane.Mat2 {
	xp := make([]float64, p.degree+1)
	yp := make([]float64, p.degree+1)
	powers(xp, pt.X)
	powers(yp, pt.Y)

	j := plane.Identity()
	for k, t := range p.terms {
		// d(x^i y^j)/dx and /dy.
		var dbx, dby float64
		if t.i > 0 {
			dbx = float64(t.i) * xp[t.i-1] * yp[t.j]
		}
		if t.j > 0 {
			dby = float64(t.j) * xp[t.i] * yp[t.j-1]
		}
		j.A += p.cx[k] * dbx
		j.B += p.cx[k] * dby
		j.C += p.cy[k] * dbx
		j.D += p.cy[k] * dby
	}
	return j
}

// powers fills dst with v^0 .. v^len-1.
func powers(dst []float64, v float64) {
	dst[0] = 1
	for i := 1; i < len(dst); i++ {
		dst[i] = dst[i-1] * v
	}
}
