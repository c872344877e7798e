package starfield

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// FieldConfig describes a synthetic source field. It stands in for an
// external catalog query during simulation and testing: sources are drawn
// uniformly over a small cap around the field center.
type FieldConfig struct {
	CenterRADeg  float64
	CenterDecDeg float64
	RadiusDeg    float64
	Count        int
	EpochYear    float64
	Seed         int64
}

// GenerateField draws a reproducible random field of sources. The same
// seed always yields the same positions; IDs are fresh UUIDs.
func GenerateField(cfg FieldConfig) Field {
	rng := rand.New(rand.NewSource(cfg.Seed))
	field := make(Field, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		// Uniform over the cap area: radius grows with sqrt(u).
		r := cfg.RadiusDeg * math.Sqrt(rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		dec := cfg.CenterDecDeg + r*math.Cos(theta)
		ra := cfg.CenterRADeg
		if cosDec := cosDeg(dec); cosDec != 0 {
			ra += r * math.Sin(theta) / cosDec
		}
		field = append(field, Source{
			ID:        uuid.NewString(),
			RADeg:     normalizeRA(ra),
			DecDeg:    clampDec(dec),
			EpochYear: cfg.EpochYear,
		})
	}
	return field
}

// GridField returns a regular grid of sources covering a square of the
// given half-width around the center, spaced by spacingDeg on both axes.
// IDs encode the grid index, so grid output files diff cleanly.
func GridField(centerRADeg, centerDecDeg, halfWidthDeg, spacingDeg float64) Field {
	if spacingDeg <= 0 || halfWidthDeg <= 0 {
		return nil
	}
	n := int(halfWidthDeg/spacingDeg + 0.5)
	var field Field
	idx := 0
	for iy := -n; iy <= n; iy++ {
		dec := centerDecDeg + float64(iy)*spacingDeg
		cosDec := cosDeg(dec)
		for ix := -n; ix <= n; ix++ {
			ra := centerRADeg
			if cosDec != 0 {
				ra += float64(ix) * spacingDeg / cosDec
			}
			field = append(field, Source{
				ID:     fmt.Sprintf("grid-%04d", idx),
				RADeg:  normalizeRA(ra),
				DecDeg: clampDec(dec),
			})
			idx++
		}
	}
	return field
}

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}

func normalizeRA(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func clampDec(deg float64) float64 {
	if deg > 90 {
		return 90
	}
	if deg < -90 {
		return -90
	}
	return deg
}
