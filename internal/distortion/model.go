// Package distortion maps ideal focal-plane positions to their optically
// distorted counterparts. Models are unit-agnostic plane-to-plane maps;
// the projection engine decides the units it feeds them (millimetres).
//
// Three families are provided: Identity (no distortion), Polynomial (a
// bivariate additive correction), and Radial (the symmetric barrel or
// pincushion term of a lens). All of them satisfy Model, so the family is
// picked at configuration time and the pipeline never inspects the
// concrete type.
package distortion

import (
	"errors"

	"warpsim/internal/plane"
)

// ErrBadCoefficients marks a model description whose coefficients do not
// match the declared basis. It is reported at construction time only.
var ErrBadCoefficients = errors.New("distortion: invalid coefficients")

// Model is a differentiable plane-to-plane distortion map.
//
// Apply and Jacobian are closed-form and always succeed. Invert solves
// Apply(p) = target per point by bounded Newton iteration; its mask
// reports which points converged. A failed point keeps its slot with a
// zero value so results stay aligned with inputs.
type Model interface {
	Apply(pts []plane.Point) []plane.Point
	Invert(pts []plane.Point) ([]plane.Point, []bool)
	Jacobian(pts []plane.Point) []plane.Mat2
}

// Identity is the no-distortion model.
type Identity struct{}

// Apply returns a copy of pts.
func (Identity) Apply(pts []plane.Point) []plane.Point {
	out := make([]plane.Point, len(pts))
	copy(out, pts)
	return out
}

// Invert returns a copy of pts with every point marked converged.
func (Identity) Invert(pts []plane.Point) ([]plane.Point, []bool) {
	out := make([]plane.Point, len(pts))
	copy(out, pts)
	ok := make([]bool, len(pts))
	for i := range ok {
		ok[i] = true
	}
	return out, ok
}

// Jacobian returns identity matrices.
func (Identity) Jacobian(pts []plane.Point) []plane.Mat2 {
	out := make([]plane.Mat2, len(pts))
	for i := range out {
		out[i] = plane.Identity()
	}
	return out
}
