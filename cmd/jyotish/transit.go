package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jyotish/internal/astro"
	"github.com/grahalabs/jyotish/internal/cli"
	"github.com/grahalabs/jyotish/internal/config"
)

func transitCmd() *cobra.Command {
	var (
		inputPath     string
		positionsPath string
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "transit",
		Short: "Overlay current positions on a natal chart (gochar)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			natal, err := deriveChartFromFile(inputPath, settings)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(positionsPath)
			if err != nil {
				return fmt.Errorf("read positions %s: %w", positionsPath, err)
			}
			var raw astro.RawPositions
			if err := json.Unmarshal(data, &raw); err != nil {
				return fmt.Errorf("parse positions %s: %w", positionsPath, err)
			}

			current, err := astro.PositionsFromRaw(raw)
			if err != nil {
				return err
			}

			snapshot := astro.SnapshotTransits(natal, current)
			if jsonOutput {
				return printJSON(snapshot)
			}
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderTransits(&snapshot))
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "natal chart input file (required)")
	cmd.Flags().StringVar(&positionsPath, "positions", "", "JSON file with transit positions (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the snapshot as JSON")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("positions")
	return cmd
}
