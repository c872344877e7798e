package distortion

import (
	"fmt"
	"math"

	"warpsim/internal/plane"
)

// Radial is the rotationally symmetric distortion of a centered optical
// system: each point is scaled along its radius from the plane origin by
//
//	1 + k[0]*r^2 + k[1]*r^4 + k[2]*r^6
//
// Positive coefficients give pincushion distortion, negative ones barrel.
type Radial struct {
	k [3]float64
}

// NewRadial builds a radial model from up to three coefficients, in
// ascending even powers of the radius.
func NewRadial(k []float64) (*Radial, error) {
	if len(k) > 3 {
		return nil, fmt.Errorf("%w: radial model takes at most 3 coefficients, got %d",
			ErrBadCoefficients, len(k))
	}
	r := &Radial{}
	for i, c := range k {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient", ErrBadCoefficients)
		}
		r.k[i] = c
	}
	return r, nil
}

// Apply evaluates the distortion for a batch of points.
func (r *Radial) Apply(pts []plane.Point) []plane.Point {
	out := make([]plane.Point, len(pts))
	for i, pt := range pts {
		out[i] = r.applyOne(pt)
	}
	return out
}

// Invert solves the forward map per point by Newton iteration.
func (r *Radial) Invert(pts []plane.Point) ([]plane.Point, []bool) {
	return newtonInvert(r.applyOne, r.jacobianOne, pts)
}

// Jacobian returns the analytic derivative of Apply at each point.
func (r *Radial) Jacobian(pts []plane.Point) []plane.Mat2 {
	out := make([]plane.Mat2, len(pts))
	for i, pt := range pts {
		out[i] = r.jacobianOne(pt)
	}
	return out
}

func (r *Radial) applyOne(pt plane.Point) plane.Point {
	r2 := pt.X*pt.X + pt.Y*pt.Y
	f := 1 + r2*(r.k[0]+r2*(r.k[1]+r2*r.k[2]))
	return plane.Point{X: pt.X * f, Y: pt.Y * f}
}

func (r *Radial) jacobianOne(pt plane.Point) plane.Mat2 {
	r2 := pt.X*pt.X + pt.Y*pt.Y
	f := 1 + r2*(r.k[0]+r2*(r.k[1]+r2*r.k[2]))
	// df/d(r^2), applied via d(r^2)/dx = 2x and d(r^2)/dy = 2y.
	g := 2 * (r.k[0] + r2*(2*r.k[1]+3*r2*r.k[2]))
	return plane.Mat2{
		A: f + pt.X*pt.X*g,
		B: pt.X * pt.Y * g,
		C: pt.X * pt.Y * g,
		D: f + pt.Y*pt.Y*g,
	}
}
