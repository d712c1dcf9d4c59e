package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grahalabs/jyotish/internal/cli"
	"github.com/grahalabs/jyotish/internal/common"
	"github.com/grahalabs/jyotish/internal/config"
	"github.com/grahalabs/jyotish/internal/storage"
)

func migrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if status {
				if settings.DatabasePath == "" {
					return common.NewConfiguration("database.path",
						fmt.Errorf("no database configured"))
				}
				// Open without migrating so status never mutates the schema.
				store, err := storage.NewSQLiteStorage(settings.DatabasePath)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()

				applied, err := store.AppliedMigrations(ctx)
				if err != nil {
					return err
				}
				current, err := store.SchemaVersion(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Schema version %d of %d\n\n", current, storage.ExpectedSchemaVersion)
				for _, m := range applied {
					fmt.Fprintf(out, "  %d  %-50s %s\n", m.Version, m.Description, m.AppliedAt)
				}
				return nil
			}

			store, err := openStorage(ctx, settings)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			current, err := store.SchemaVersion(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, cli.SuccessStyle.Render(fmt.Sprintf(
				"Database at schema version %d", current)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "show applied migrations without changing anything")
	return cmd
}
