// Package reconcile mirrors the direct file children of a source directory
// into a target directory, using modification time as the change signal.
package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dirsync/internal/logger"
	"dirsync/internal/model"
	"dirsync/internal/syncerr"
	"dirsync/internal/util"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type Reconciler struct {
	fs  afero.Fs
	now func() time.Time
}

type Option func(*Reconciler)

// WithClock replaces the clock used to stamp log entries.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

func New(fs afero.Fs, opts ...Option) *Reconciler {
	r := &Reconciler{
		fs:  fs,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Reconcile runs one forward pass (copy new and newer files from src to dst)
// followed by one reverse pass (delete files in dst that src lacks).
// Subdirectories are ignored on both sides.
//
// The first failing copy or delete aborts the pass. Operations applied before
// the failure are not rolled back; their entries are returned together with
// the error.
func (r *Reconciler) Reconcile(src, dst string) (model.SyncRun, error) {
	if src == "" || dst == "" {
		return nil, syncerr.InvalidInput("reconcile", "source and target directories are required")
	}

	if err := r.checkSource(src); err != nil {
		return nil, err
	}

	if err := r.ensureTarget(dst); err != nil {
		return nil, err
	}

	run := model.SyncRun{}

	srcFiles, err := r.listFiles(src)
	if err != nil {
		return run, err
	}

	for _, srcInfo := range srcFiles {
		entry, err := r.forward(src, dst, srcInfo)
		if err != nil {
			r.logFailure(run, srcInfo.Name(), err)
			return run, err
		}
		if entry != nil {
			run = append(run, *entry)
		}
	}

	dstFiles, err := r.listFiles(dst)
	if err != nil {
		return run, err
	}

	for _, dstInfo := range dstFiles {
		entry, err := r.prune(src, dst, dstInfo.Name())
		if err != nil {
			r.logFailure(run, dstInfo.Name(), err)
			return run, err
		}
		if entry != nil {
			run = append(run, *entry)
		}
	}

	return run, nil
}

func (r *Reconciler) forward(src, dst string, srcInfo os.FileInfo) (*model.LogEntry, error) {
	name := srcInfo.Name()
	srcPath := filepath.Join(src, name)
	dstPath := filepath.Join(dst, name)

	dstInfo, err := r.statFile(dstPath)
	if err != nil {
		return nil, err
	}

	var action model.Action
	switch {
	case dstInfo == nil:
		action = model.ActionCreated
	case srcInfo.ModTime().After(dstInfo.ModTime()):
		action = model.ActionModified
	default:
		logger.Log.Debug("target up to date",
			zap.String("file", name),
			zap.Time("src_mod", srcInfo.ModTime()),
			zap.Time("dst_mod", dstInfo.ModTime()))
		return nil, nil
	}

	if err := util.CopyFile(r.fs, srcPath, dstPath); err != nil {
		return nil, syncerr.IOFailure("copy", name, err)
	}

	return r.record(name, action, dstPath), nil
}

func (r *Reconciler) prune(src, dst, name string) (*model.LogEntry, error) {
	srcInfo, err := r.statFile(filepath.Join(src, name))
	if err != nil {
		return nil, err
	}
	if srcInfo != nil {
		return nil, nil
	}

	dstPath := filepath.Join(dst, name)
	if err := r.fs.Remove(dstPath); err != nil {
		return nil, syncerr.IOFailure("delete", name, err)
	}

	return r.record(name, model.ActionDeleted, dstPath), nil
}

func (r *Reconciler) record(name string, action model.Action, dstPath string) *model.LogEntry {
	entry := &model.LogEntry{
		FilePath:  name,
		Action:    action,
		Timestamp: r.now(),
	}

	logger.Log.Info("synced",
		zap.String("action", string(action)),
		zap.String("file", name),
		zap.String("dst", dstPath))

	return entry
}

func (r *Reconciler) logFailure(run model.SyncRun, name string, err error) {
	logger.Log.Error("sync failed",
		zap.String("file", name),
		zap.Int("applied", len(run)),
		zap.Error(err))
}

func (r *Reconciler) checkSource(src string) error {
	info, err := r.fs.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return syncerr.NotFound("open source directory", src, err)
		}
		return syncerr.IOFailure("stat source directory", src, err)
	}

	if !info.IsDir() {
		return syncerr.NotFound("open source directory", src, fmt.Errorf("not a directory"))
	}

	return nil
}

func (r *Reconciler) ensureTarget(dst string) error {
	info, err := r.fs.Stat(dst)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return syncerr.IOFailure("create target directory", dst, fmt.Errorf("not a directory"))
	case !os.IsNotExist(err):
		return syncerr.IOFailure("stat target directory", dst, err)
	}

	if err := r.fs.MkdirAll(dst, 0755); err != nil {
		return syncerr.IOFailure("create target directory", dst, err)
	}

	logger.Log.Info("created target directory",
		zap.String("dst", dst))

	return nil
}

// listFiles returns the regular files directly under dir in listing order.
// Symlinks are followed; dangling links and directories are skipped.
func (r *Reconciler) listFiles(dir string) ([]os.FileInfo, error) {
	entries, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return nil, syncerr.IOFailure("list", dir, err)
	}

	files := make([]os.FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.Mode()&os.ModeSymlink != 0 {
			resolved, err := r.fs.Stat(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			e = resolved
		}

		if e.Mode().IsRegular() {
			files = append(files, e)
		}
	}

	return files, nil
}

// statFile returns nil info when path does not exist or is not a regular file.
func (r *Reconciler) statFile(path string) (os.FileInfo, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, syncerr.IOFailure("stat", path, err)
	}

	if !info.Mode().IsRegular() {
		return nil, nil
	}

	return info, nil
}
