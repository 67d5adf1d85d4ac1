package daemon

import (
	"fmt"
	"path/filepath"
	"time"

	"dirsync/internal/logger"
	"dirsync/internal/model"
	"dirsync/internal/reconcile"
	"dirsync/internal/syncerr"
	"dirsync/internal/synclog"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type HistoryStore interface {
	SaveRun(runID, src, dst string, run model.SyncRun, status model.RunStatus) error
}

// Runner performs one complete synchronization attempt: reconcile the pair,
// record the applied entries and write the log artifact.
type Runner struct {
	src        string
	dst        string
	format     model.Format
	reconciler *reconcile.Reconciler
	writer     *synclog.Writer
	history    HistoryStore
}

type RunnerOptions struct {
	Src     string
	Dst     string
	Format  model.Format
	LogDir  string
	History HistoryStore
	Clock   func() time.Time
}

func NewRunner(fs afero.Fs, opts RunnerOptions) (*Runner, error) {
	if opts.Src == "" || opts.Dst == "" {
		return nil, syncerr.InvalidInput("create runner", "source and target directories are required")
	}
	if _, err := synclog.CodecFor(opts.Format); err != nil {
		return nil, err
	}

	absSrc, err := filepath.Abs(opts.Src)
	if err != nil {
		return nil, syncerr.InvalidInput("create runner", "invalid src path: %v", err)
	}
	absDst, err := filepath.Abs(opts.Dst)
	if err != nil {
		return nil, syncerr.InvalidInput("create runner", "invalid dst path: %v", err)
	}

	var recOpts []reconcile.Option
	if opts.Clock != nil {
		recOpts = append(recOpts, reconcile.WithClock(opts.Clock))
	}

	return &Runner{
		src:        absSrc,
		dst:        absDst,
		format:     opts.Format,
		reconciler: reconcile.New(fs, recOpts...),
		writer:     synclog.NewWriter(fs, opts.LogDir),
		history:    opts.History,
	}, nil
}

func (r *Runner) Src() string {
	return r.src
}

func (r *Runner) Dst() string {
	return r.dst
}

func (r *Runner) Format() model.Format {
	return r.format
}

// Run executes one pass. A failed pass is not rolled back: the entries it
// applied are still recorded in history as a partial run, but no log
// artifact is written for it.
func (r *Runner) Run() (model.RunSummary, error) {
	started := time.Now()
	summary := model.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: started,
	}

	logger.Log.Info("starting sync",
		zap.String("run_id", summary.RunID),
		zap.String("src", r.src),
		zap.String("dst", r.dst),
		zap.String("format", r.format.String()))

	run, err := r.reconciler.Reconcile(r.src, r.dst)
	summary.Created = run.Count(model.ActionCreated)
	summary.Modified = run.Count(model.ActionModified)
	summary.Deleted = run.Count(model.ActionDeleted)

	if err != nil {
		r.saveHistory(summary.RunID, run, model.RunStatusPartial)
		return r.finish(summary, started, fmt.Errorf("sync aborted after %d applied actions: %w", len(run), err))
	}

	r.saveHistory(summary.RunID, run, model.RunStatusSuccess)

	path, err := r.writer.Write(run, r.format)
	if err != nil {
		return r.finish(summary, started, err)
	}
	summary.LogPath = path

	return r.finish(summary, started, nil)
}

func (r *Runner) finish(summary model.RunSummary, started time.Time, err error) (model.RunSummary, error) {
	summary.Duration = time.Since(started).Round(time.Millisecond).String()

	if err != nil {
		summary.Err = err.Error()
		logger.Log.Error("sync failed",
			zap.String("run_id", summary.RunID),
			zap.Error(err))
		return summary, err
	}

	logger.Log.Info("sync complete",
		zap.String("run_id", summary.RunID),
		zap.Int("created", summary.Created),
		zap.Int("modified", summary.Modified),
		zap.Int("deleted", summary.Deleted),
		zap.String("log", summary.LogPath),
		zap.String("duration", summary.Duration))

	return summary, nil
}

func (r *Runner) saveHistory(runID string, run model.SyncRun, status model.RunStatus) {
	if r.history == nil || len(run) == 0 {
		return
	}

	if err := r.history.SaveRun(runID, r.src, r.dst, run, status); err != nil {
		logger.Log.Warn("failed to save history",
			zap.String("run_id", runID),
			zap.Error(err))
	}
}
