package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"warpsim/internal/config"
	"warpsim/internal/logging"
	"warpsim/internal/sim"
	"warpsim/internal/starfield"
)

var (
	gridConfigPath string
	gridSchemaPath string
	gridHalfWidth  float64
	gridSpacing    float64
	gridOutFile    string
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Project a regular sky grid for distortion mapping",
	Long: "grid projects a regular RA/Dec grid through the pipeline with Jacobians enabled. " +
		"The output maps the distortion field and plate scale across the mosaic.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(gridConfigPath, gridSchemaPath)
		if err != nil {
			return err
		}
		engine, err := cfg.BuildEngine()
		if err != nil {
			return err
		}

		var writer sim.ResultWriter = sim.NewJSONStdoutWriter()
		if gridOutFile != "" {
			fw, err := sim.NewFileWriter(gridOutFile, "")
			if err != nil {
				return err
			}
			defer fw.Close()
			writer = fw
		}

		field := starfield.GridField(cfg.Pointing.RADeg, cfg.Pointing.DecDeg, gridHalfWidth, gridSpacing)

		ctx := logging.NewContext(context.Background(), logging.New(slog.LevelInfo))
		runner := sim.NewRunner("", cfg.Name, engine, writer)
		_, err = runner.Run(ctx, field, sim.RunOptions{Jacobians: true})
		return err
	},
}

func init() {
	gridCmd.Flags().StringVar(&gridConfigPath, "config", "config/instrument.yaml", "Path to instrument description YAML")
	gridCmd.Flags().StringVar(&gridSchemaPath, "schema", "schemas/instrument.cue", "Path to CUE schema file")
	gridCmd.Flags().Float64Var(&gridHalfWidth, "half-width", 0.5, "Grid half-width around the boresight (degrees)")
	gridCmd.Flags().Float64Var(&gridSpacing, "spacing", 0.05, "Grid spacing on both axes (degrees)")
	gridCmd.Flags().StringVar(&gridOutFile, "out", "", "Path to export result rows (JSONL)")
}
