package distortion

import (
	"math"
	"testing"

	"warpsim/internal/plane"
)

func TestNewRadialValidates(t *testing.T) {
	if _, err := NewRadial([]float64{1, 2, 3, 4}); err == nil {
		t.Error("four coefficients accepted")
	}
	if _, err := NewRadial([]float64{math.Inf(1)}); err == nil {
		t.Error("non-finite coefficient accepted")
	}
	m, err := NewRadial(nil)
	if err != nil {
		t.Fatalf("empty coefficients rejected: %v", err)
	}
	p := plane.Point{X: 3, Y: -4}
	if got := m.Apply([]plane.Point{p})[0]; got != p {
		t.Errorf("zero radial model moved %+v to %+v", p, got)
	}
}

func TestRadialInvertRoundTrip(t *testing.T) {
	// Mild pincushion over a 30 mm field.
	m, err := NewRadial([]float64{2e-6, -1e-10, 0})
	if err != nil {
		t.Fatalf("NewRadial: %v", err)
	}
	pts := fieldGrid(30, 9)
	warped := m.Apply(pts)
	back, ok := m.Invert(warped)
	for i := range pts {
		if !ok[i] {
			t.Fatalf("inversion failed at %+v", pts[i])
		}
		if d := back[i].Sub(pts[i]).Norm(); d > 1e-9 {
			t.Errorf("round trip error %.3e at %+v", d, pts[i])
		}
	}
}

func TestRadialJacobianAgreement(t *testing.T) {
	m, err := NewRadial([]float64{2e-6, -1e-10, 5e-15})
	if err != nil {
		t.Fatalf("NewRadial: %v", err)
	}
	assertJacobianAgreement(t, m, fieldGrid(30, 7))
}

func TestInvertReportsNonConvergence(t *testing.T) {
	// Strong barrel distortion folds the plane: r' = r(1 - r^2/2) never
	// exceeds ~0.544, so a target beyond that is unreachable. The Newton
	// budget runs out for that point alone; the rest of the batch still
	// inverts.
	m, err := NewRadial([]float64{-0.5, 0, 0})
	if err != nil {
		t.Fatalf("NewRadial: %v", err)
	}
	targets := []plane.Point{
		{X: 0.1, Y: 0},  // reachable
		{X: 1.2, Y: 0},  // beyond the fold
		{X: 0, Y: 0.05}, // reachable
	}
	out, ok := m.Invert(targets)
	if len(out) != len(targets) {
		t.Fatalf("result length %d, want %d", len(out), len(targets))
	}
	if !ok[0] || !ok[2] {
		t.Error("reachable targets failed to invert")
	}
	if ok[1] {
		t.Error("unreachable target reported as converged")
	}
	if (out[1] != plane.Point{}) {
		t.Errorf("failed slot carries value %+v, want zero", out[1])
	}
}
