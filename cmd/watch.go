package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirsync/internal/daemon"
	"dirsync/internal/logger"
	"dirsync/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchFormat string

var watchCmd = &cobra.Command{
	Use:   "watch [source] [target]",
	Short: "Keep target mirrored while source changes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		r, err := newRunner(args[0], args[1], watchFormat)
		if err != nil {
			return err
		}

		d := daemon.New(r, daemon.Options{
			Debounce:   time.Duration(cfg.DebounceMs) * time.Millisecond,
			BufferSize: cfg.BufferSize,
			LogDir:     cfg.LogDir,
		})
		if err := d.Start(); err != nil {
			return err
		}

		srv := daemon.NewServer(d, repository.NewHistoryRepository(), cfg.DaemonPort)
		srv.Start()

		logger.Log.Info("dirsync daemon started",
			zap.String("src", r.Src()),
			zap.String("dst", r.Dst()),
			zap.Int("port", cfg.DaemonPort))

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			logger.Log.Info("shutting down",
				zap.String("signal", sig.String()))
		case <-srv.StopCh():
			logger.Log.Info("stop requested via API")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(ctx)
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "structured", "log format: structured (xml) or tagged (json)")
	rootCmd.AddCommand(watchCmd)
}
