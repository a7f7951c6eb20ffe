package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the attempt journal",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		mode, _ := cmd.Flags().GetString("mode")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.AttemptRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(attempts) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-22s  %-7s  %-16s  %-16s  %7s  %s\n",
			"ID", "Timestamp", "Mode", "Setting", "Answer", "Key", "Ms", "OK")
		fmt.Fprintln(out, strings.Repeat("─", 110))

		for _, a := range attempts {
			if mode != "" && a.ModeID != mode {
				continue
			}
			ok := "✓"
			if !a.Correct {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-22s  %-7s  %-16s  %-16s  %7d  %s\n",
				a.ID,
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				clip(a.ModeID, 22),
				a.Setting,
				clip(a.Submission, 16),
				clip(a.AnswerKey, 16),
				a.ElapsedMs,
				ok,
			)
		}
		return nil
	},
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Maximum attempts to show (0 for all)")
	historyListCmd.Flags().String("mode", "", "Only show attempts for this mode ID")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
}
