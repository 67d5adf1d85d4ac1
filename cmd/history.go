package cmd

import (
	"fmt"

	"dirsync/internal/model"
	"dirsync/internal/repository"

	"github.com/spf13/cobra"
)

var (
	historyN     int
	historyStats bool
	historyRun   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View applied sync actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := repository.NewHistoryRepository()
		out := cmd.OutOrStdout()

		if historyStats {
			stats, err := repo.GetStats()
			if err != nil {
				return fmt.Errorf("failed to load stats: %w", err)
			}

			_, _ = fmt.Fprintf(out, "runs: %d, actions: %d (created %d, modified %d, deleted %d)\n",
				stats.Runs, stats.Total, stats.Created, stats.Modified, stats.Deleted)
			return nil
		}

		histories, err := repo.GetRecent(historyN)
		if historyRun != "" {
			histories, err = repo.GetRun(historyRun)
		}
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if len(histories) == 0 {
			_, _ = fmt.Fprintln(out, "no history yet")
			return nil
		}

		for _, h := range histories {
			status := "✓"
			if h.Status == model.RunStatusPartial {
				status = "!"
			}

			_, _ = fmt.Fprintf(out, "%s [%s] %-8s %-30s %s\n",
				status,
				h.SyncedAt.Local().Format("2006-01-02 15:04:05"),
				h.Action,
				h.FilePath,
				shortID(h.RunID),
			)
		}

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of history entries to show")
	historyCmd.Flags().BoolVar(&historyStats, "stats", false, "show action counts instead of entries")
	historyCmd.Flags().StringVar(&historyRun, "run", "", "show the entries of one run")
	rootCmd.AddCommand(historyCmd)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
