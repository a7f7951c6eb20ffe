package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathdrill/internal/config"
	"github.com/abhisek/mathdrill/internal/logging"
	"github.com/abhisek/mathdrill/internal/questionsvc"
	"github.com/abhisek/mathdrill/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mathdrill",
	Short: "Arithmetic drills in the terminal",
	Long: "mathdrill: practice scalar and matrix arithmetic against a question service.\n" +
		"Pick a mode, answer questions, and keep your streak going.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command under ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	addGlobalFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("server", "", "Question service URL (overrides MATHDRILL_SERVICE_URL)")
	pf.String("db", "", "Path to the journal database (overrides MATHDRILL_DB)")
	pf.Bool("no-journal", false, "Do not record attempts")
	pf.String("log-file", "", "Write JSON logs to this file (overrides MATHDRILL_LOG_FILE)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig reads the environment and .env, then applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if v, _ := flags.GetString("server"); v != "" {
		cfg.ServiceURL = v
	}
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetBool("no-journal"); v {
		cfg.Journal = false
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
}

// resolveDBPath returns the configured journal path or the default XDG path,
// creating its directory.
func resolveDBPath(cfg config.Config) (string, error) {
	p := cfg.DBPath
	if p == "" {
		var err error
		if p, err = store.DefaultDBPath(); err != nil {
			return "", err
		}
	}
	return p, store.EnsureDir(p)
}

// openJournal opens the attempt journal named by cfg.
func openJournal(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	return logger, nil
}

func newClient(cfg config.Config, logger *zap.Logger) (*questionsvc.Client, error) {
	return questionsvc.New(cfg.ServiceURL,
		questionsvc.WithTimeout(cfg.HTTPTimeout),
		questionsvc.WithLogger(logger.Named("questionsvc")),
	)
}
