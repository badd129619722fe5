package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/exchange_rates_app/internal/core/services"
	"github.com/SscSPs/exchange_rates_app/internal/providers"
	"github.com/spf13/cobra"
)

func getSyncCommand(app *application) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetches rates once from one provider, or from every enabled one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var scheduled []providers.Scheduled
			if name != "" {
				p, err := providers.ByName(name, app.cfg.Providers, nil)
				if err != nil {
					return err
				}
				scheduled = append(scheduled, providers.Scheduled{Provider: p})
			} else {
				scheduled = providers.Enabled(app.cfg.Providers, nil)
			}
			if len(scheduled) == 0 {
				return errors.New("no providers enabled")
			}

			st, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.close()

			if err := app.migrateOnStartup(cmd.Context(), st); err != nil {
				return err
			}

			container := services.NewServiceContainer(app.cfg, st.repos, nil, app.logger)
			var failed int
			for _, s := range scheduled {
				n, err := container.RateSync.SyncProvider(cmd.Context(), s.Provider)
				if err != nil {
					failed++
					app.logger.Error("Sync failed", slog.String("provider", s.Provider.Name()), slog.String("error", err.Error()))
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rates stored\n", s.Provider.Name(), n)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d providers failed", failed, len(scheduled))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "provider", "", "provider to sync (ecb or iex); all enabled when empty")

	return cmd
}
