package cmd

import (
	"fmt"

	"dirsync/internal/daemon"
	"dirsync/internal/logger"
	"dirsync/internal/model"
	"dirsync/internal/repository"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var syncFormat string

var syncCmd = &cobra.Command{
	Use:   "sync [source] [target]",
	Short: "Mirror source into target once and write the sync log",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		r, err := newRunner(args[0], args[1], syncFormat)
		if err != nil {
			return err
		}

		summary, err := r.Run()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "sync complete: %d created, %d modified, %d deleted\n",
			summary.Created, summary.Modified, summary.Deleted)
		_, _ = fmt.Fprintf(out, "log written to %s\n", summary.LogPath)
		return nil
	},
}

func newRunner(src, dst, format string) (*daemon.Runner, error) {
	f, err := model.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	return daemon.NewRunner(afero.NewOsFs(), daemon.RunnerOptions{
		Src:     src,
		Dst:     dst,
		Format:  f,
		LogDir:  cfg.LogDir,
		History: repository.NewHistoryRepository(),
	})
}

func init() {
	syncCmd.Flags().StringVarP(&syncFormat, "format", "f", "structured", "log format: structured (xml) or tagged (json)")
	rootCmd.AddCommand(syncCmd)
}
