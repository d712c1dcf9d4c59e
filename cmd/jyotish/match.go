package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jyotish/internal/astro"
	"github.com/grahalabs/jyotish/internal/cli"
	"github.com/grahalabs/jyotish/internal/config"
	"github.com/grahalabs/jyotish/internal/model"
)

func matchCmd() *cobra.Command {
	var (
		firstPath  string
		secondPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Score ashta koota compatibility between two charts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			first, err := deriveChartFromFile(firstPath, settings)
			if err != nil {
				return err
			}
			second, err := deriveChartFromFile(secondPath, settings)
			if err != nil {
				return err
			}

			result, err := astro.Compatibility(first, second)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(result)
			}
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderCompatibility(&result))
			return nil
		},
	}

	cmd.Flags().StringVar(&firstPath, "a", "", "first chart input file (required)")
	cmd.Flags().StringVar(&secondPath, "b", "", "second chart input file (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the result as JSON")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")
	return cmd
}

func deriveChartFromFile(path string, settings config.Settings) (*model.Chart, error) {
	input, err := readRequestFile(path)
	if err != nil {
		return nil, err
	}
	if err := input.Birth.Validate(); err != nil {
		return nil, fmt.Errorf("input %s: %w", path, err)
	}

	positions, err := astro.PositionsFromRaw(input.Positions)
	if err != nil {
		return nil, err
	}
	ascendant, err := astro.AscendantFromRaw(input.Positions)
	if err != nil {
		return nil, err
	}
	chart, err := astro.DeriveChart(ascendant, positions, settings.HouseSystem)
	if err != nil {
		return nil, err
	}
	return &chart, nil
}
