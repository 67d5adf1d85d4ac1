package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dirsync/internal/model"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func newTestDaemon(t *testing.T) (*Daemon, string, string) {
	t.Helper()

	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "mirror")
	logs := t.TempDir()

	r, err := NewRunner(afero.NewOsFs(), RunnerOptions{Src: src, Dst: dst, Format: model.FormatTagged, LogDir: logs})
	require.NoError(t, err)

	d := New(r, Options{Debounce: 20 * time.Millisecond, BufferSize: 16, LogDir: logs})
	return d, src, dst
}

func TestDaemon_SyncsOnChange(t *testing.T) {
	d, src, dst := newTestDaemon(t)
	require.NoError(t, os.WriteFile(filepath.Join(src, "first.txt"), []byte("1"), 0644))

	require.NoError(t, d.Start())
	defer d.Stop()

	assert.Eventually(t, func() bool {
		return fileExists(filepath.Join(dst, "first.txt"))
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(src, "second.txt"), []byte("2"), 0644))
	assert.Eventually(t, func() bool {
		return fileExists(filepath.Join(dst, "second.txt"))
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(filepath.Join(src, "first.txt")))
	assert.Eventually(t, func() bool {
		return !fileExists(filepath.Join(dst, "first.txt"))
	}, 5*time.Second, 20*time.Millisecond)

	snap := d.Snapshot()
	assert.GreaterOrEqual(t, snap.Runs, 3)
	assert.Zero(t, snap.Failed)
	require.NotNil(t, snap.LastRun)
}

func TestDaemon_PauseResume(t *testing.T) {
	d, src, dst := newTestDaemon(t)

	require.NoError(t, d.Start())
	defer d.Stop()

	assert.Eventually(t, func() bool {
		return d.Snapshot().Runs >= 1
	}, 5*time.Second, 20*time.Millisecond)

	d.Pause()
	assert.True(t, d.Snapshot().Paused)

	require.NoError(t, os.WriteFile(filepath.Join(src, "later.txt"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.False(t, fileExists(filepath.Join(dst, "later.txt")))

	d.Resume()
	assert.Eventually(t, func() bool {
		return fileExists(filepath.Join(dst, "later.txt"))
	}, 5*time.Second, 20*time.Millisecond)
}

func TestDaemon_Trigger(t *testing.T) {
	d, src, dst := newTestDaemon(t)

	require.NoError(t, d.Start())
	defer d.Stop()

	d.Pause()
	require.NoError(t, os.WriteFile(filepath.Join(src, "manual.txt"), []byte("m"), 0644))

	d.Trigger()
	assert.Eventually(t, func() bool {
		return fileExists(filepath.Join(dst, "manual.txt"))
	}, 5*time.Second, 20*time.Millisecond)
}

func TestDaemon_StartMissingSource(t *testing.T) {
	r, err := NewRunner(afero.NewOsFs(), RunnerOptions{
		Src: filepath.Join(t.TempDir(), "missing"), Dst: t.TempDir(), Format: model.FormatTagged, LogDir: t.TempDir(),
	})
	require.NoError(t, err)

	d := New(r, Options{})
	require.Error(t, d.Start())
	d.Stop()
}

func TestNew_IgnoresLogInSource(t *testing.T) {
	src := t.TempDir()
	r, err := NewRunner(afero.NewMemMapFs(), RunnerOptions{Src: src, Dst: "/dst", Format: model.FormatTagged, LogDir: src})
	require.NoError(t, err)

	d := New(r, Options{LogDir: src})
	assert.Contains(t, d.ignore, "sync_log.*")

	d = New(r, Options{LogDir: t.TempDir()})
	assert.NotContains(t, d.ignore, "sync_log.*")
}
