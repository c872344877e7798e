package starfield

import (
	"math"
	"testing"
)

func TestAtEpochPropagatesProperMotion(t *testing.T) {
	// 1000 mas/yr over 10 years is 10 arcsec.
	f := Field{{
		ID:         "s1",
		RADeg:      180,
		DecDeg:     60,
		PMRACosDec: 1000,
		PMDec:      -1000,
		EpochYear:  2016.0,
	}}
	out := f.AtEpoch(2026.0)

	wantDec := 60 - 10.0/3600
	if math.Abs(out[0].DecDeg-wantDec) > 1e-12 {
		t.Errorf("dec = %.12f, want %.12f", out[0].DecDeg, wantDec)
	}
	wantRA := 180 + 10.0/3600/math.Cos(60*math.Pi/180)
	if math.Abs(out[0].RADeg-wantRA) > 1e-9 {
		t.Errorf("ra = %.12f, want %.12f", out[0].RADeg, wantRA)
	}
	if f[0].RADeg != 180 || f[0].DecDeg != 60 {
		t.Error("AtEpoch mutated the input field")
	}
}

func TestAtEpochNoMotionIsCopy(t *testing.T) {
	f := Field{{ID: "s1", RADeg: 10, DecDeg: 20, EpochYear: 2016.0}}
	out := f.AtEpoch(2030.0)
	if out[0] != f[0] {
		t.Errorf("source without proper motion changed: %+v", out[0])
	}
}
