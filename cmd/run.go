package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/app"
)

// runApp builds the question client and journal, then launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	client, err := newClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("question service: %w", err)
	}

	opts := app.Options{
		Source: client,
		Logger: logger,
	}
	if cfg.Journal {
		st, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		opts.Journal = st.AttemptRepo()
	}

	logger.Info("starting",
		zap.String("service", cfg.ServiceURL),
		zap.Bool("journal", cfg.Journal),
		zap.String("version", version),
	)
	return app.Run(ctx, opts)
}
