package focalplane

import (
	"errors"
	"math"
	"testing"

	"warpsim/internal/plane"
)

// chip returns an 8x8-pixel detector with an exactly representable pixel
// scale, so boundary arithmetic in the tests is exact.
func chip(id int, ox, oy, rot float64) Detector {
	return Detector{ID: id, OffsetX: ox, OffsetY: oy, RotationDeg: rot, PixelScale: 0.25, Width: 8, Height: 8}
}

func TestNewGeometryValidation(t *testing.T) {
	cases := []struct {
		name      string
		detectors []Detector
	}{
		{"empty", nil},
		{"duplicate id", []Detector{chip(1, 0, 0, 0), chip(1, 5, 0, 0)}},
		{"zero scale", []Detector{{ID: 1, PixelScale: 0, Width: 8, Height: 8}}},
		{"negative size", []Detector{{ID: 1, PixelScale: 0.25, Width: -8, Height: 8}}},
		{"nan offset", []Detector{{ID: 1, OffsetX: math.NaN(), PixelScale: 0.25, Width: 8, Height: 8}}},
	}
	for _, tc := range cases {
		if _, err := NewGeometry(tc.detectors); err == nil {
			t.Errorf("%s: invalid geometry accepted", tc.name)
		} else if !errors.Is(err, ErrBadGeometry) {
			t.Errorf("%s: error %v does not wrap ErrBadGeometry", tc.name, err)
		}
	}
}

func TestAssignCenterAndGap(t *testing.T) {
	g, err := NewGeometry([]Detector{chip(1, -3, 0, 0), chip(2, 3, 0, 0)})
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	// Chip half-size is 8*0.25/2 = 1 mm, so chips span [-4,-2] and [2,4].
	out := g.Assign([]plane.Point{
		{X: -3, Y: 0}, // center of chip 1
		{X: 3, Y: 0},  // center of chip 2
		{X: 0, Y: 0},  // inter-chip gap
		{X: 9, Y: 9},  // outside the mosaic
	})
	if !out[0].Assigned || out[0].DetectorID != 1 || out[0].Pixel.X != 4 || out[0].Pixel.Y != 4 {
		t.Errorf("chip 1 center: %+v", out[0])
	}
	if !out[1].Assigned || out[1].DetectorID != 2 {
		t.Errorf("chip 2 center: %+v", out[1])
	}
	if out[2].Assigned || out[3].Assigned {
		t.Errorf("gap/outside points assigned: %+v %+v", out[2], out[3])
	}
}

func TestOverlapTieBreakIsLowestID(t *testing.T) {
	// Two fully overlapping chips, listed high ID first.
	a := chip(7, 0, 0, 0)
	b := chip(3, 0, 0, 0)
	for _, order := range [][]Detector{{a, b}, {b, a}} {
		g, err := NewGeometry(order)
		if err != nil {
			t.Fatalf("NewGeometry: %v", err)
		}
		for i := 0; i < 5; i++ {
			out := g.Assign([]plane.Point{{X: 0.1, Y: -0.2}})
			if !out[0].Assigned || out[0].DetectorID != 3 {
				t.Fatalf("tie-break chose %+v, want detector 3", out[0])
			}
		}
	}
}

func TestBoundaryConventionHalfOpen(t *testing.T) {
	g, err := NewGeometry([]Detector{chip(1, 0, 0, 0)})
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	// The chip spans [-1, 1) mm: pixel 0 is on-chip, pixel 8 is not.
	out := g.Assign([]plane.Point{
		{X: -1, Y: 0}, // lower edge, pixel x = 0
		{X: 1, Y: 0},  // upper edge, pixel x = 8 = width
		{X: 0, Y: -1}, // lower edge in y
		{X: 0, Y: 1},  // upper edge in y
	})
	if !out[0].Assigned || out[0].Pixel.X != 0 {
		t.Errorf("lower x edge: %+v, want assigned at pixel 0", out[0])
	}
	if out[1].Assigned {
		t.Errorf("upper x edge assigned: %+v", out[1])
	}
	if !out[2].Assigned || out[2].Pixel.Y != 0 {
		t.Errorf("lower y edge: %+v", out[2])
	}
	if out[3].Assigned {
		t.Errorf("upper y edge assigned: %+v", out[3])
	}
}

func TestPixelRoundTripWithRotation(t *testing.T) {
	d := chip(1, 5, -2, 30)
	g, err := NewGeometry([]Detector{d})
	if err != nil {
		t.Fatalf("NewGeometry: %v", err)
	}
	pixels := []plane.Point{{X: 0, Y: 0}, {X: 4, Y: 4}, {X: 7.5, Y: 1.25}}
	focal, err := g.PixelToFocal(1, pixels)
	if err != nil {
		t.Fatalf("PixelToFocal: %v", err)
	}
	out := g.Assign(focal)
	for i := range pixels {
		if !out[i].Assigned {
			t.Fatalf("pixel %+v left the chip after round trip", pixels[i])
		}
		if d := out[i].Pixel.Sub(pixels[i]).Norm(); d > 1e-12 {
			t.Errorf("pixel %+v round-tripped to %+v", pixels[i], out[i].Pixel)
		}
	}
}

func TestPixelToFocalUnknownDetector(t *testing.T) {
	g, _ := NewGeometry([]Detector{chip(1, 0, 0, 0)})
	if _, err := g.PixelToFocal(99, nil); !errors.Is(err, ErrBadGeometry) {
		t.Errorf("unknown detector error = %v", err)
	}
}
