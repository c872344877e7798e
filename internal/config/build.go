package config

import (
	"fmt"

	"warpsim/internal/attitude"
	"warpsim/internal/distortion"
	"warpsim/internal/focalplane"
	"warpsim/internal/projection"
)

// Distortion family names accepted in the instrument description.
const (
	DistortionIdentity   = "identity"
	DistortionPolynomial = "polynomial"
	DistortionRadial     = "radial"
)

// BuildEngine compiles the instrument description into a ready projection
// engine. Every model-configuration failure surfaces here, before any
// source is projected.
func (c *InstrumentConfig) BuildEngine() (*projection.Engine, error) {
	model, err := c.Distortion.build()
	if err != nil {
		return nil, err
	}
	geometry, err := c.buildGeometry()
	if err != nil {
		return nil, err
	}
	pointing := attitude.Pointing{
		RADeg:            c.Pointing.RADeg,
		DecDeg:           c.Pointing.DecDeg,
		PositionAngleDeg: c.Pointing.PositionAngleDeg,
	}
	return projection.New(pointing, model, geometry, c.Optics.FocalLengthMM)
}

func (d DistortionConfig) build() (distortion.Model, error) {
	switch d.Type {
	case DistortionIdentity, "":
		return distortion.Identity{}, nil
	case DistortionPolynomial:
		return distortion.NewPolynomial(d.Degree, d.CoeffX, d.CoeffY)
	case DistortionRadial:
		return distortion.NewRadial(d.K)
	default:
		return nil, fmt.Errorf("%w: unknown distortion type %q",
			distortion.ErrBadCoefficients, d.Type)
	}
}

func (c *InstrumentConfig) buildGeometry() (*focalplane.Geometry, error) {
	detectors := make([]focalplane.Detector, len(c.Detectors))
	for i, d := range c.Detectors {
		detectors[i] = focalplane.Detector{
			ID:          d.ID,
			OffsetX:     d.OffsetXMM,
			OffsetY:     d.OffsetYMM,
			RotationDeg: d.RotationDeg,
			PixelScale:  d.PixelScaleMM,
			Width:       d.WidthPx,
			Height:      d.HeightPx,
		}
	}
	return focalplane.NewGeometry(detectors)
}
