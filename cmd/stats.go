package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy and pace per mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.AttemptRepo().Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(stats) == 0 {
			fmt.Fprintln(out, "No attempts recorded yet.")
			return nil
		}

		fmt.Fprintln(out, "Accuracy by Mode")
		fmt.Fprintln(out, strings.Repeat("─", 64))
		fmt.Fprintf(out, "%-24s  %8s  %8s  %8s  %8s\n",
			"Mode", "Attempts", "Correct", "Accuracy", "Avg s")
		fmt.Fprintln(out, strings.Repeat("─", 64))

		var total, correct int
		for _, st := range stats {
			fmt.Fprintf(out, "%-24s  %8d  %8d  %7.0f%%  %8.1f\n",
				clip(st.ModeID, 24), st.Attempts, st.Correct, st.Accuracy()*100, st.AvgElapsed.Seconds())
			total += st.Attempts
			correct += st.Correct
		}

		fmt.Fprintln(out, strings.Repeat("─", 64))
		fmt.Fprintf(out, "%-24s  %8d  %8d  %7.0f%%\n",
			"TOTAL", total, correct, float64(correct)/float64(total)*100)
		return nil
	},
}
