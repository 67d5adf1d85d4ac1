package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dirsync/internal/model"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View watch daemon status",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/status"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var snap model.WatchSnapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		state := "ACTIVE"
		if snap.Paused {
			state = "PAUSED"
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "%-8s %-30s -> %-30s (%s)\n", state, snap.Src, snap.Dst, snap.Format)
		_, _ = fmt.Fprintf(out, "uptime: %s, runs: %d, failed: %d\n",
			time.Since(snap.StartedAt).Round(time.Second), snap.Runs, snap.Failed)

		if last := snap.LastRun; last != nil {
			_, _ = fmt.Fprintf(out, "last run: %s at %s, %d created, %d modified, %d deleted\n",
				shortID(last.RunID),
				last.StartedAt.Format("2006-01-02 15:04:05"),
				last.Created, last.Modified, last.Deleted)
			if last.Err != "" {
				_, _ = fmt.Fprintf(out, "last error: %s\n", last.Err)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
