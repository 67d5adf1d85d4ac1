package daemon

import (
	"path/filepath"
	"sync"
	"time"

	"dirsync/internal/config"
	"dirsync/internal/logger"
	"dirsync/internal/model"
	"dirsync/internal/pipeline"
	"dirsync/internal/util"
	"dirsync/internal/watcher"

	"go.uber.org/zap"
)

// Daemon keeps a pair in sync by running a pass on start, on every debounced
// burst of source changes and on manual triggers. Passes never overlap.
type Daemon struct {
	runner    *Runner
	state     *State
	watcher   *watcher.Watcher
	debounce  time.Duration
	bufSize   int
	ignore    []string
	triggerCh chan struct{}
	doneCh    chan struct{}
	wg        sync.WaitGroup
	stopOnce  sync.Once
}

type Options struct {
	Debounce   time.Duration
	BufferSize int
	LogDir     string
}

func New(runner *Runner, opts Options) *Daemon {
	if opts.BufferSize <= 0 {
		opts.BufferSize = config.Default.BufferSize
	}

	ignore := []string{"*" + util.TempSuffix}

	// A log written into the watched directory must not retrigger a pass.
	if logDir, err := filepath.Abs(opts.LogDir); err == nil && logDir == runner.Src() {
		ignore = append(ignore, "sync_log.*")
	}

	return &Daemon{
		runner:    runner,
		state:     NewState(runner.Src(), runner.Dst(), runner.Format()),
		debounce:  opts.Debounce,
		bufSize:   opts.BufferSize,
		ignore:    ignore,
		triggerCh: make(chan struct{}, 1),
		doneCh:    make(chan struct{}),
	}
}

func (d *Daemon) Start() error {
	w, err := watcher.New(d.bufSize)
	if err != nil {
		return err
	}

	if err := w.Watch(d.runner.Src()); err != nil {
		w.Stop()
		return err
	}
	d.watcher = w

	batches := pipeline.Debounce(pipeline.Filter(w.Events(), d.ignore), d.debounce)

	d.wg.Add(1)
	go d.loop(batches)

	return nil
}

func (d *Daemon) loop(batches <-chan []model.FileEvent) {
	defer d.wg.Done()

	d.runOnce("initial")

	for {
		select {
		case <-d.doneCh:
			go func() {
				for range batches {
				}
			}()
			return

		case batch, ok := <-batches:
			if !ok {
				return
			}

			if d.state.Paused() {
				logger.Log.Debug("paused, ignoring changes",
					zap.Int("events", len(batch)))
				continue
			}

			logger.Log.Debug("source changed",
				zap.Int("events", len(batch)))
			d.runOnce("watch")

		case <-d.triggerCh:
			d.runOnce("manual")
		}
	}
}

func (d *Daemon) runOnce(reason string) {
	logger.Log.Debug("pass triggered",
		zap.String("reason", reason))

	summary, err := d.runner.Run()
	d.state.RecordRun(summary, err)
}

// Trigger requests a pass. Requests made while one is already queued are
// merged into it.
func (d *Daemon) Trigger() {
	select {
	case d.triggerCh <- struct{}{}:
	default:
	}
}

func (d *Daemon) Pause() {
	d.state.SetPaused(true)
	logger.Log.Info("watch paused")
}

// Resume re-enables watch passes and queues one to pick up changes missed
// while paused.
func (d *Daemon) Resume() {
	d.state.SetPaused(false)
	logger.Log.Info("watch resumed")
	d.Trigger()
}

func (d *Daemon) Snapshot() model.WatchSnapshot {
	return d.state.Snapshot()
}

func (d *Daemon) Stop() {
	d.stopOnce.Do(func() {
		close(d.doneCh)
		if d.watcher != nil {
			d.watcher.Stop()
		}
		d.wg.Wait()
		logger.Log.Info("watch stopped")
	})
}
