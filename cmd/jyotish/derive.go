package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jyotish/internal/cli"
	"github.com/grahalabs/jyotish/internal/config"
)

func deriveCmd() *cobra.Command {
	var (
		inputPath  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive a full reading from birth data and positions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			input, err := readRequestFile(inputPath)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			e, cleanup, err := buildEngine(ctx, settings)
			if err != nil {
				return err
			}
			defer cleanup()

			reading, err := e.Derive(ctx, input.toDeriveRequest(settings))
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(reading)
			}
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderReading(reading))
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "JSON file with birth data and positions (required)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the structured reading as JSON")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
