package main

import (
	"fmt"

	"github.com/SscSPs/exchange_rates_app/internal/core/migrations"
	"github.com/spf13/cobra"
)

func getMigrateCommand(app *application) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Moves the schema to a configured version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target, err := migrations.ParseTarget(to)
			if err != nil {
				return err
			}

			st, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.close()

			if err := app.engine(st).Migrate(cmd.Context(), target); err != nil {
				return err
			}
			version, err := st.schema.CurrentVersion(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "latest", `target version, or "latest"`)

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Shows the current schema version and pending steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.close()

			status, err := app.engine(st).Status(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "current: %d\nlatest:  %d\n", status.Current, status.Latest)
			if len(status.Pending) > 0 {
				_, _ = fmt.Fprintf(out, "pending: %v\n", status.Pending)
			}
			return nil
		},
	})

	return cmd
}
