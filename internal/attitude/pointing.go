// Package attitude converts celestial coordinates into the boresight
// tangent-plane frame and back. The projection is the standard gnomonic
// one, centered on the boresight and rolled by the position angle.
package attitude

import (
	"errors"
	"fmt"
	"math"
)

// ErrBadPointing marks an unusable boresight description. It is reported
// at construction time; projection calls never return it.
var ErrBadPointing = errors.New("attitude: invalid pointing")

// Pointing is the telescope boresight: where the optical axis points and
// how the field is rolled around it. Angles are degrees.
type Pointing struct {
	RADeg            float64
	DecDeg           float64
	PositionAngleDeg float64
}

// Validate checks that the pointing describes a usable boresight.
func (p Pointing) Validate() error {
	for _, v := range []float64{p.RADeg, p.DecDeg, p.PositionAngleDeg} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite angle", ErrBadPointing)
		}
	}
	if p.DecDeg < -90 || p.DecDeg > 90 {
		return fmt.Errorf("%w: dec %.4f out of [-90, 90]", ErrBadPointing, p.DecDeg)
	}
	return nil
}

// Sky is a celestial position in degrees.
type Sky struct {
	RADeg  float64
	DecDeg float64
}

const degToRad = math.Pi / 180

// frame caches the trigonometry shared by every point of a batch.
type frame struct {
	ra0            float64
	sinDec0        float64
	cosDec0        float64
	sinPA, cosPA   float64
}

func newFrame(p Pointing) frame {
	sinDec0, cosDec0 := math.Sincos(p.DecDeg * degToRad)
	sinPA, cosPA := math.Sincos(p.PositionAngleDeg * degToRad)
	return frame{
		ra0:     p.RADeg * degToRad,
		sinDec0: sinDec0,
		cosDec0: cosDec0,
		sinPA:   sinPA,
		cosPA:   cosPA,
	}
}
