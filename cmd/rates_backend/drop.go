package main

import (
	"fmt"

	"github.com/SscSPs/exchange_rates_app/internal/core/migrations"
	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
	"github.com/SscSPs/exchange_rates_app/internal/repositories/database/sqlite"
	"github.com/spf13/cobra"
)

func getDropCommand(app *application) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Deletes all stored data",
		Long: "Removes the SQLite database file. On PostgreSQL every configured " +
			"step is reverted down to version 0.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to drop %s database without --yes", app.cfg.DatabaseDriver)
			}

			if app.cfg.DatabaseDriver == config.DriverSQLite {
				if err := sqlite.Remove(app.cfg.DatabaseURL); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", app.cfg.DatabaseURL)
				return nil
			}

			st, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.close()

			if err := app.engine(st).Migrate(cmd.Context(), migrations.Version(0)); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "schema reverted to version 0")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	return cmd
}
