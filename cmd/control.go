package cmd

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func postDaemon(path string) error {
	resp, err := http.Post(daemonURL(path), "application/json", nil)
	if err != nil {
		return fmt.Errorf("daemon not running: %w", err)
	}

	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("daemon returned %s", resp.Status)
	}

	return nil
}

func controlCmd(use, short, path, done string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := postDaemon(path); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), done)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(
		controlCmd("stop", "Stop the watch daemon", "/stop", "stopped"),
		controlCmd("pause", "Pause watch-triggered passes", "/pause", "paused"),
		controlCmd("resume", "Resume watch-triggered passes", "/resume", "resumed"),
		controlCmd("trigger", "Run a pass in the watch daemon now", "/sync", "pass queued"),
	)
}
