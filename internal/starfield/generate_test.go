package starfield

import (
	"math"
	"testing"
)

func TestGenerateFieldReproducible(t *testing.T) {
	cfg := FieldConfig{CenterRADeg: 120, CenterDecDeg: -30, RadiusDeg: 0.5, Count: 50, Seed: 7}
	a := GenerateField(cfg)
	b := GenerateField(cfg)
	if len(a) != 50 || len(b) != 50 {
		t.Fatalf("expected 50 sources, got %d / %d", len(a), len(b))
	}
	for i := range a {
		if a[i].RADeg != b[i].RADeg || a[i].DecDeg != b[i].DecDeg {
			t.Fatalf("same seed produced different positions at %d", i)
		}
	}
	if a[0].ID == b[0].ID {
		t.Error("IDs should be fresh per generation")
	}
}

func TestGenerateFieldStaysInRadius(t *testing.T) {
	cfg := FieldConfig{CenterRADeg: 120, CenterDecDeg: -30, RadiusDeg: 0.5, Count: 200, Seed: 3}
	cosDec := math.Cos(-30 * math.Pi / 180)
	for _, s := range GenerateField(cfg) {
		dRA := (s.RADeg - 120) * cosDec
		dDec := s.DecDeg + 30
		if r := math.Hypot(dRA, dDec); r > 0.5*1.01 {
			t.Errorf("source %s at offset %.4f deg, beyond radius", s.ID, r)
		}
	}
}

func TestGridField(t *testing.T) {
	f := GridField(100, 0, 0.2, 0.1)
	// 2 cells per side around the center line: 5x5 grid.
	if len(f) != 25 {
		t.Fatalf("expected 25 grid points, got %d", len(f))
	}
	if f[0].ID != "grid-0000" || f[24].ID != "grid-0024" {
		t.Errorf("unexpected grid IDs %s / %s", f[0].ID, f[24].ID)
	}
	if GridField(100, 0, 0.2, 0) != nil {
		t.Error("zero spacing should yield no field")
	}
}
