package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/quiz"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the modes the question service offers",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		modes, err := client.Modes(ctx)
		if err != nil {
			return fmt.Errorf("fetch modes: %w", err)
		}
		if len(modes) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "The service offers no modes.")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-24s  %-24s  %-10s  %s\n", "ID", "Name", "Parameter", "Options")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for _, m := range modes {
			var opts []quiz.Option
			switch m.ParamKind() {
			case quiz.ParamDigits:
				opts, err = client.DigitOptions(ctx, m.ID)
			case quiz.ParamDifficulty:
				opts, err = client.DifficultyOptions(ctx, m.ID)
			}
			if err != nil {
				return fmt.Errorf("fetch options for %s: %w", m.ID, err)
			}

			values := make([]string, 0, len(opts))
			for _, o := range opts {
				values = append(values, o.Value)
			}
			optStr := strings.Join(values, ", ")
			if m.ParamKind() == quiz.ParamNone {
				optStr = "-"
			}
			fmt.Fprintf(out, "%-24s  %-24s  %-10s  %s\n", m.ID, m.Name, m.ParamKind(), optStr)
		}
		return nil
	},
}
