package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"warpsim/internal/attitude"
	"warpsim/internal/config"
	"warpsim/internal/focalplane"
	"warpsim/internal/logging"
	"warpsim/internal/sim"
	"warpsim/internal/starfield"
)

var (
	projConfigPath string
	projSchemaPath string
	projSources    int
	projRadiusDeg  float64
	projSeed       int64
	projEpochYear  float64
	projJacobians  bool
	projOutFile    string
	projTUI        bool
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a synthetic source field onto the focal plane",
	Long: "project draws a reproducible random field around the configured boresight, " +
		"runs it through the projection pipeline, and writes one result row per source.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(projConfigPath, projSchemaPath)
		if err != nil {
			return err
		}
		engine, err := cfg.BuildEngine()
		if err != nil {
			return err
		}

		writer, tui, cleanup, err := newWriters(cfg, engine.Geometry())
		if err != nil {
			return err
		}
		defer cleanup()

		field := starfield.GenerateField(starfield.FieldConfig{
			CenterRADeg:  cfg.Pointing.RADeg,
			CenterDecDeg: cfg.Pointing.DecDeg,
			RadiusDeg:    projRadiusDeg,
			Count:        projSources,
			EpochYear:    projEpochYear,
			Seed:         projSeed,
		})

		ctx := logging.NewContext(context.Background(), logging.New(slog.LevelInfo))
		runner := sim.NewRunner(os.Getenv("WARPSIM_RUN_ID"), cfg.Name, engine, writer)
		if _, err := runner.Run(ctx, field, sim.RunOptions{
			EpochYear: projEpochYear,
			Jacobians: projJacobians,
		}); err != nil {
			return err
		}

		if tui != nil {
			tui.Wait()
		}
		return nil
	},
}

// newWriters assembles the writer stack from the flags: STDOUT JSON by
// default, optionally multiplexed into a JSONL file and/or the TUI.
func newWriters(cfg *config.InstrumentConfig, geom *focalplane.Geometry) (sim.ResultWriter, *sim.TUIWriter, func(), error) {
	var writers []sim.ResultWriter
	var tui *sim.TUIWriter
	cleanup := func() {}

	if projTUI {
		var ids []int
		for _, d := range geom.Detectors() {
			ids = append(ids, d.ID)
		}
		tui = sim.NewTUIWriter(cfg.Name, enginePointing(cfg), ids)
		writers = append(writers, tui)
	} else {
		writers = append(writers, sim.NewJSONStdoutWriter())
	}

	if projOutFile != "" {
		fw, err := sim.NewFileWriter(projOutFile, "")
		if err != nil {
			return nil, nil, cleanup, err
		}
		writers = append(writers, fw)
		cleanup = func() { fw.Close() }
	}

	if len(writers) == 1 {
		return writers[0], tui, cleanup, nil
	}
	return sim.NewMultiWriter(writers...), tui, cleanup, nil
}

func enginePointing(cfg *config.InstrumentConfig) attitude.Pointing {
	return attitude.Pointing{
		RADeg:            cfg.Pointing.RADeg,
		DecDeg:           cfg.Pointing.DecDeg,
		PositionAngleDeg: cfg.Pointing.PositionAngleDeg,
	}
}

func init() {
	projectCmd.Flags().StringVar(&projConfigPath, "config", "config/instrument.yaml", "Path to instrument description YAML")
	projectCmd.Flags().StringVar(&projSchemaPath, "schema", "schemas/instrument.cue", "Path to CUE schema file")
	projectCmd.Flags().IntVar(&projSources, "sources", 500, "Number of synthetic sources to draw")
	projectCmd.Flags().Float64Var(&projRadiusDeg, "radius", 0.5, "Field radius around the boresight (degrees)")
	projectCmd.Flags().Int64Var(&projSeed, "seed", 1, "Random seed for the synthetic field")
	projectCmd.Flags().Float64Var(&projEpochYear, "epoch", 0, "Observation epoch (Julian year, 0 keeps catalog positions)")
	projectCmd.Flags().BoolVar(&projJacobians, "jacobians", false, "Include local d(pixel)/d(sky) Jacobians in the output")
	projectCmd.Flags().StringVar(&projOutFile, "out", "", "Path to export result rows (JSONL)")
	projectCmd.Flags().BoolVar(&projTUI, "tui", false, "Render results in a live focal-plane TUI instead of STDOUT")
}
