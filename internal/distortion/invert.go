package distortion

import (
	"math"

	"warpsim/internal/plane"
)

// Newton iteration budget for inverse distortion. Realistic optical
// distortion is a small perturbation of the identity, so convergence is
// quadratic and a handful of steps suffices; the cap only bites when the
// target lies outside the model's invertible region.
const (
	maxNewtonIters = 25
	newtonTol      = 1e-10
)

// newtonInvert solves apply(p) = target for each target, seeded at the
// target itself. The mask reports per-point convergence: a point fails
// when the iteration budget runs out, the local Jacobian is singular, or
// the iterate wanders off to a non-finite value.
func newtonInvert(
	apply func(plane.Point) plane.Point,
	jacobian func(plane.Point) plane.Mat2,
	targets []plane.Point,
) ([]plane.Point, []bool) {
	out := make([]plane.Point, len(targets))
	ok := make([]bool, len(targets))
	for i, target := range targets {
		if p, converged := newtonInvertOne(apply, jacobian, target); converged {
			out[i] = p
			ok[i] = true
		}
	}
	return out, ok
}

func newtonInvertOne(
	apply func(plane.Point) plane.Point,
	jacobian func(plane.Point) plane.Mat2,
	target plane.Point,
) (plane.Point, bool) {
	p := target
	for iter := 0; iter <= maxNewtonIters; iter++ {
		f := apply(p)
		rx := f.X - target.X
		ry := f.Y - target.Y
		if math.Abs(rx) <= newtonTol && math.Abs(ry) <= newtonTol {
			return p, true
		}
		if iter == maxNewtonIters {
			break
		}
		inv, invertible := jacobian(p).Inverse()
		if !invertible {
			break
		}
		p.X -= inv.A*rx + inv.B*ry
		p.Y -= inv.C*rx + inv.D*ry
		if !p.IsFinite() {
			break
		}
	}
	return plane.Point{}, false
}
