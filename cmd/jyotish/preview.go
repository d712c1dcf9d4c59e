package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jyotish/internal/cli"
	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/config"
	"github.com/grahalabs/jyotish/internal/engine"
	"github.com/grahalabs/jyotish/internal/rules"
	"github.com/grahalabs/jyotish/internal/service"
	"github.com/grahalabs/jyotish/internal/tui"
)

func previewCmd() *cobra.Command {
	var (
		inputPath   string
		interactive bool
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Evaluate rules against a chart and browse the matches",
		Long: `Derives a reading and shows which rules matched with their bound
evidence. With --interactive the matches open in a browsable table;
with --watch the rules file is re-evaluated on every save, useful when
authoring a rule set before importing it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			input, err := readRequestFile(inputPath)
			if err != nil {
				return err
			}

			if watch {
				return previewWatch(cmd, settings, input.toDeriveRequest(settings))
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

			if interactive {
				return tui.Run(reading)
			}
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderMatches(reading.Matches))
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "JSON file with birth data and positions (required)")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "open the interactive match browser")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-evaluate whenever the rules file changes")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// previewWatch re-derives and re-renders the match table on every
// successful rules file reload until interrupted.
func previewWatch(cmd *cobra.Command, settings config.Settings, req service.DeriveRequest) error {
	if settings.RulesPath == "" {
		return common.NewConfiguration("rules.path",
			fmt.Errorf("--watch needs a rules file (--rules or rules.path)"))
	}

	swapped := make(chan int64, 1)
	reloader, err := rules.NewReloader(settings.RulesPath, func(version int64) {
		select {
		case swapped <- version:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = reloader.Close() }()

	ctx := cmd.Context()
	go reloader.Run(ctx)

	out := cmd.OutOrStdout()
	render := func() error {
		e, err := engine.New(reloader.Active())
		if err != nil {
			return err
		}
		reading, err := e.Derive(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n%s",
			cli.SubtitleStyle.Render(fmt.Sprintf("rule set version %d", reloader.Version())),
			cli.RenderMatches(reading.Matches))
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf(
		"Watching %s; press Ctrl-C to stop.", settings.RulesPath)))

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-swapped:
			if err := render(); err != nil {
				return err
			}
		}
	}
}
