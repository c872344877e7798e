// YAML instrument description loader with CUE validation integration
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PointingConfig fixes the boresight for a run.
type PointingConfig struct {
	RADeg            float64 `yaml:"ra_deg"`
	DecDeg           float64 `yaml:"dec_deg"`
	PositionAngleDeg float64 `yaml:"position_angle_deg"`
}

// OpticsConfig carries the scalar optical parameters.
type OpticsConfig struct {
	FocalLengthMM float64 `yaml:"focal_length_mm"`
}

// DistortionConfig selects and parameterizes a distortion family.
// Polynomial models read Degree/CoeffX/CoeffY, radial models read K,
// and identity needs nothing beyond its type.
type DistortionConfig struct {
	Type   string    `yaml:"type"`
	Degree int       `yaml:"degree"`
	CoeffX []float64 `yaml:"coeff_x"`
	CoeffY []float64 `yaml:"coeff_y"`
	K      []float64 `yaml:"k"`
}

// DetectorConfig places one chip on the focal plane.
type DetectorConfig struct {
	ID           int     `yaml:"id"`
	OffsetXMM    float64 `yaml:"offset_x_mm"`
	OffsetYMM    float64 `yaml:"offset_y_mm"`
	RotationDeg  float64 `yaml:"rotation_deg"`
	PixelScaleMM float64 `yaml:"pixel_scale_mm"`
	WidthPx      int     `yaml:"width_px"`
	HeightPx     int     `yaml:"height_px"`
}

// InstrumentConfig is the root instrument description.
type InstrumentConfig struct {
	Name       string           `yaml:"name"`
	Pointing   PointingConfig   `yaml:"pointing"`
	Optics     OpticsConfig     `yaml:"optics"`
	Distortion DistortionConfig `yaml:"distortion"`
	Detectors  []DetectorConfig `yaml:"detectors"`
}

// Load reads a YAML instrument description and validates it against a CUE
// schema before decoding. Schema violations and malformed YAML both fail
// the load; nothing downstream sees a half-valid instrument.
func Load(configPath, cueSchemaPath string) (*InstrumentConfig, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg InstrumentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("cannot parse instrument YAML: %w", err)
	}
	return &cfg, nil
}
