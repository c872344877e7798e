package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "warpsim",
	Short: "Focal-plane projection toolkit",
	Long:  "Warpsim projects celestial sources onto the warped focal plane of an astrometric instrument and back.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(gridCmd)
}
