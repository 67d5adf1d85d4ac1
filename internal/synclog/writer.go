// Package synclog persists a SyncRun as the sync_log artifact.
package synclog

import (
	"bytes"
	"path/filepath"

	"dirsync/internal/logger"
	"dirsync/internal/model"
	"dirsync/internal/syncerr"
	"dirsync/internal/util"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const baseName = "sync_log"

type Writer struct {
	fs  afero.Fs
	dir string
}

func NewWriter(fs afero.Fs, dir string) *Writer {
	return &Writer{fs: fs, dir: dir}
}

// Path returns the fixed artifact location for format.
func (w *Writer) Path(format model.Format) (string, error) {
	codec, err := CodecFor(format)
	if err != nil {
		return "", err
	}

	return w.path(codec), nil
}

func (w *Writer) path(codec Codec) string {
	return filepath.Join(w.dir, baseName+"."+codec.Ext())
}

// Write replaces the artifact with run encoded in format. On failure the
// previous artifact, if any, is left untouched.
func (w *Writer) Write(run model.SyncRun, format model.Format) (string, error) {
	codec, err := CodecFor(format)
	if err != nil {
		return "", err
	}

	data, err := codec.Encode(run)
	if err != nil {
		return "", err
	}

	path := w.path(codec)
	if err := util.AtomicWrite(w.fs, path, bytes.NewReader(data), 0644); err != nil {
		return "", syncerr.IOFailure("write log", path, err)
	}

	logger.Log.Info("sync log written",
		zap.String("path", path),
		zap.String("format", format.String()),
		zap.Int("entries", len(run)))

	return path, nil
}

func (w *Writer) Read(format model.Format) (model.SyncRun, error) {
	codec, err := CodecFor(format)
	if err != nil {
		return nil, err
	}

	path := w.path(codec)
	data, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return nil, syncerr.IOFailure("read log", path, err)
	}

	return codec.Decode(data)
}
