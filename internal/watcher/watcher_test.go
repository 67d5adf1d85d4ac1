package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dirsync/internal/model"
	"dirsync/internal/syncerr"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := New(16)
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))
	defer w.Stop()

	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha"), 0644))

	select {
	case e := <-w.Events():
		assert.Equal(t, path, e.Path)
		assert.Contains(t, []model.EventType{model.EventCreate, model.EventWrite}, e.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
}

func TestWatcher_StopClosesEvents(t *testing.T) {
	w, err := New(1)
	require.NoError(t, err)
	require.NoError(t, w.Watch(t.TempDir()))

	w.Stop()

	select {
	case _, ok := <-w.Events():
		for ok {
			_, ok = <-w.Events()
		}
	case <-time.After(5 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := New(1)
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, syncerr.ErrNotFound)
}

func TestToEventType(t *testing.T) {
	assert.Equal(t, model.EventCreate, toEventType(fsnotify.Create))
	assert.Equal(t, model.EventWrite, toEventType(fsnotify.Write))
	assert.Equal(t, model.EventRemove, toEventType(fsnotify.Remove))
	assert.Equal(t, model.EventRename, toEventType(fsnotify.Rename))
	assert.Equal(t, model.EventChmod, toEventType(fsnotify.Chmod))
	assert.Equal(t, model.EventType(""), toEventType(0))
}
