package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jyotish/internal/cli"
	"github.com/grahalabs/jyotish/internal/config"
	"github.com/grahalabs/jyotish/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage rule set snapshots",
	}
	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesShowCmd())
	cmd.AddCommand(rulesLintCmd())
	cmd.AddCommand(rulesImportCmd())
	return cmd
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored rule set snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStorage(ctx, settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			infos, err := store.ListRuleSets(ctx)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No rule sets imported."))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.TableHeaderStyle.Render(
				fmt.Sprintf("%-8s %-24s %-6s %s", "Version", "Name", "Rules", "Imported")))
			for _, info := range infos {
				fmt.Fprintf(out, "%-8d %-24s %-6d %s\n",
					info.Version, info.Name, info.RuleCount,
					info.ImportedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func rulesShowCmd() *cobra.Command {
	var version int64

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one stored rule set as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStorage(ctx, settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			set, err := store.GetRuleSet(ctx, version)
			if err != nil {
				return err
			}
			return printJSON(set)
		},
	}

	cmd.Flags().Int64Var(&version, "version", 0, "rule set version to show (required)")
	_ = cmd.MarkFlagRequired("version")
	return cmd
}

func rulesLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file>",
		Short: "Validate a rule set file without importing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compiled, err := rules.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(fmt.Sprintf(
				"%s compiles: version %d, %d active rules",
				args[0], compiled.Version(), len(compiled.Set().ActiveRules()))))
			return nil
		},
	}
}

func rulesImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Validate and store a rule set snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			// Compile before touching the store so a broken file never
			// becomes the active snapshot.
			compiled, err := rules.LoadFile(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStorage(ctx, settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveRuleSet(ctx, compiled.Set()); err != nil {
				return err
			}
			// Entries fingerprinted under older versions are now stale.
			if err := store.Invalidate(ctx, compiled.Version()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(fmt.Sprintf(
				"Imported rule set version %d (%d rules); stale cache entries evicted",
				compiled.Version(), len(compiled.Set().Rules))))
			return nil
		},
	}
}
