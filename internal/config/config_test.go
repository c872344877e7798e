package config

import (
	"os"
	"path/filepath"
	"testing"
)

const testSchema = `
name: string & !=""
pointing: {
	ra_deg:             number & >=0 & <360
	dec_deg:            number & >=-90 & <=90
	position_angle_deg: number
}
optics: {
	focal_length_mm: number & >0
}
distortion: {
	type: "identity" | "polynomial" | "radial"
	if type == "polynomial" {
		degree:  int & >=0
		coeff_x: [...number]
		coeff_y: [...number]
	}
	if type == "radial" {
		k: [...number]
	}
}
detectors: [_, ...] & [...{
	id:             int & >=0
	offset_x_mm:    number
	offset_y_mm:    number
	rotation_deg:   number
	pixel_scale_mm: number & >0
	width_px:       int & >0
	height_px:      int & >0
}]
`

func writeFixture(t *testing.T, yaml string) (configPath, schemaPath string) {
	t.Helper()
	dir := t.TempDir()
	configPath = filepath.Join(dir, "instrument.yaml")
	schemaPath = filepath.Join(dir, "instrument.cue")
	if err := os.WriteFile(configPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(schemaPath, []byte(testSchema), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}
	return configPath, schemaPath
}

const validYAML = `
name: test-instrument
pointing:
  ra_deg: 120.5
  dec_deg: -45.0
  position_angle_deg: 15.0
optics:
  focal_length_mm: 7300.0
distortion:
  type: radial
  k: [1.0e-6]
detectors:
  - id: 1
    offset_x_mm: 0.0
    offset_y_mm: 0.0
    rotation_deg: 0.0
    pixel_scale_mm: 0.015
    width_px: 1280
    height_px: 1280
`

func TestLoadValid(t *testing.T) {
	configPath, schemaPath := writeFixture(t, validYAML)
	cfg, err := Load(configPath, schemaPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Name != "test-instrument" || len(cfg.Detectors) != 1 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Optics.FocalLengthMM != 7300.0 {
		t.Errorf("focal length = %v", cfg.Optics.FocalLengthMM)
	}

	engine, err := cfg.BuildEngine()
	if err != nil {
		t.Fatalf("BuildEngine() returned error: %v", err)
	}
	if engine.Pointing().RADeg != 120.5 {
		t.Errorf("engine pointing = %+v", engine.Pointing())
	}
}

func TestLoadShippedInstrument(t *testing.T) {
	cfg, err := Load("../../config/instrument.yaml", "../../schemas/instrument.cue")
	if err != nil {
		t.Fatalf("shipped instrument fails to load: %v", err)
	}
	if len(cfg.Detectors) != 9 {
		t.Errorf("shipped mosaic has %d detectors, want 9", len(cfg.Detectors))
	}
	if _, err := cfg.BuildEngine(); err != nil {
		t.Errorf("shipped instrument fails to build: %v", err)
	}
}

func TestLoadRejectsSchemaViolation(t *testing.T) {
	bad := `
name: broken
pointing:
  ra_deg: 120.5
  dec_deg: -45.0
  position_angle_deg: 0.0
optics:
  focal_length_mm: -1.0
distortion:
  type: identity
detectors:
  - id: 1
    offset_x_mm: 0.0
    offset_y_mm: 0.0
    rotation_deg: 0.0
    pixel_scale_mm: 0.015
    width_px: 1280
    height_px: 1280
`
	configPath, schemaPath := writeFixture(t, bad)
	if _, err := Load(configPath, schemaPath); err == nil {
		t.Error("negative focal length passed schema validation")
	}
}

func TestBuildEngineRejectsCoefficientMismatch(t *testing.T) {
	// Degree 2 needs 6 coefficients per axis; 3 passes the schema (any
	// number list) but must fail model construction.
	bad := `
name: mismatch
pointing:
  ra_deg: 120.5
  dec_deg: -45.0
  position_angle_deg: 0.0
optics:
  focal_length_mm: 7300.0
distortion:
  type: polynomial
  degree: 2
  coeff_x: [0.0, 0.0, 0.0]
  coeff_y: [0.0, 0.0, 0.0]
detectors:
  - id: 1
    offset_x_mm: 0.0
    offset_y_mm: 0.0
    rotation_deg: 0.0
    pixel_scale_mm: 0.015
    width_px: 1280
    height_px: 1280
`
	configPath, schemaPath := writeFixture(t, bad)
	cfg, err := Load(configPath, schemaPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if _, err := cfg.BuildEngine(); err == nil {
		t.Error("coefficient/degree mismatch accepted")
	}
}

func TestBuildEngineUnknownDistortionType(t *testing.T) {
	cfg := &InstrumentConfig{
		Pointing:   PointingConfig{RADeg: 10, DecDeg: 10},
		Optics:     OpticsConfig{FocalLengthMM: 1000},
		Distortion: DistortionConfig{Type: "spline"},
		Detectors: []DetectorConfig{
			{ID: 1, PixelScaleMM: 0.015, WidthPx: 100, HeightPx: 100},
		},
	}
	if _, err := cfg.BuildEngine(); err == nil {
		t.Error("unknown distortion type accepted")
	}
}
