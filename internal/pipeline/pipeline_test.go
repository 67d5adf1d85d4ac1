package pipeline

import (
	"testing"
	"time"

	"dirsync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(path string) model.FileEvent {
	return model.FileEvent{Type: model.EventWrite, Path: path, Timestamp: time.Now()}
}

func TestFilter(t *testing.T) {
	in := make(chan model.FileEvent, 4)
	in <- event("/src/a.txt")
	in <- event("/src/a.txt.dirsync.tmp")
	in <- event("/src/sync_log.json")
	in <- event("/src/b.txt")
	close(in)

	var got []string
	for e := range Filter(in, []string{"*.dirsync.tmp", "sync_log.*"}) {
		got = append(got, e.Path)
	}

	assert.Equal(t, []string{"/src/a.txt", "/src/b.txt"}, got)
}

func TestDebounce_Batches(t *testing.T) {
	in := make(chan model.FileEvent)
	out := Debounce(in, 30*time.Millisecond)

	in <- event("/src/a.txt")
	in <- event("/src/b.txt")
	in <- event("/src/a.txt")

	select {
	case batch := <-out:
		assert.Len(t, batch, 3)
	case <-time.After(2 * time.Second):
		t.Fatal("batch not emitted")
	}

	in <- event("/src/c.txt")
	select {
	case batch := <-out:
		require.Len(t, batch, 1)
		assert.Equal(t, "/src/c.txt", batch[0].Path)
	case <-time.After(2 * time.Second):
		t.Fatal("second batch not emitted")
	}

	close(in)
	_, ok := <-out
	assert.False(t, ok)
}

func TestDebounce_FlushOnClose(t *testing.T) {
	in := make(chan model.FileEvent, 2)
	out := Debounce(in, time.Hour)

	in <- event("/src/a.txt")
	in <- event("/src/b.txt")
	close(in)

	batch, ok := <-out
	require.True(t, ok)
	assert.Len(t, batch, 2)

	_, ok = <-out
	assert.False(t, ok)
}

func TestDebounce_FoldsWhileWaiting(t *testing.T) {
	in := make(chan model.FileEvent)
	out := Debounce(in, 10*time.Millisecond)

	in <- event("/src/a.txt")
	time.Sleep(50 * time.Millisecond)
	in <- event("/src/b.txt")
	in <- event("/src/c.txt")

	batch := <-out
	assert.Len(t, batch, 3)

	close(in)
	for range out {
	}
}
