package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SscSPs/exchange_rates_app/internal/platform/config"
	"github.com/SscSPs/exchange_rates_app/internal/platform/logging"
	"github.com/spf13/cobra"
)

type RootCommand struct {
	baseCmd *cobra.Command
	app     *application
}

// application is what every sub-command needs before it runs.
type application struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

func NewRootCommand() *RootCommand {
	app := &application{}
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Use:               "rates_backend",
			Short:             "Exchange rate store, resolver and provider sync",
			SilenceUsage:      true,
			PersistentPreRunE: app.init,
		},
		app: app,
	}

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		getServeCommand(rc.app),
		getMigrateCommand(rc.app),
		getSyncCommand(rc.app),
		getDropCommand(rc.app),
	)
}

func (rc *RootCommand) Execute() {
	err := rc.baseCmd.Execute()
	rc.app.close()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}

func (a *application) init(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	a.logCloser = closer

	if cfg.ConfigFile != "" {
		logger.Info("Configuration override loaded", slog.String("file", cfg.ConfigFile))
	}
	return nil
}

func (a *application) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}
