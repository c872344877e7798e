package distortion

import "warpsim/internal/plane"

// NumericJacobian differentiates a model's forward map by central finite
// differences with step h. It exists to cross-check the analytic
// Jacobians: error propagation leans on them, so the two derivations are
// required to agree and the tests enforce it.
func NumericJacobian(m Model, pts []plane.Point, h float64) []plane.Mat2 {
	probes := make([]plane.Point, 0, 4*len(pts))
	for _, pt := range pts {
		probes = append(probes,
			plane.Point{X: pt.X + h, Y: pt.Y},
			plane.Point{X: pt.X - h, Y: pt.Y},
			plane.Point{X: pt.X, Y: pt.Y + h},
			plane.Point{X: pt.X, Y: pt.Y - h},
		)
	}
	vals := m.Apply(probes)

	out := make([]plane.Mat2, len(pts))
	for i := range pts {
		xp, xm := vals[4*i], vals[4*i+1]
		yp, ym := vals[4*i+2], vals[4*i+3]
		out[i] = plane.Mat2{
			A: (xp.X - xm.X) / (2 * h),
			B: (yp.X - ym.X) / (2 * h),
			C: (xp.Y - xm.Y) / (2 * h),
			D: (yp.Y - ym.Y) / (2 * h),
		}
	}
	return out
}
