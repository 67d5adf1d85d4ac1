package util

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/log.json", []byte("old"), 0644))

	require.NoError(t, AtomicWrite(fs, "/out/log.json", strings.NewReader("new content"), 0644))

	got, err := afero.ReadFile(fs, "/out/log.json")
	require.NoError(t, err)
	assert.Equal(t, "new content", string(got))

	exists, err := afero.Exists(fs, "/out/log.json"+TempSuffix)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAtomicWrite_CreatesParent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, AtomicWrite(fs, "/a/b/c.txt", strings.NewReader("x"), 0644))

	ok, err := afero.DirExists(fs, "/a/b")
	require.NoError(t, err)
	assert.True(t, ok)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestAtomicWrite_KeepsOldOnFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out/log.xml", []byte("previous"), 0644))

	err := AtomicWrite(fs, "/out/log.xml", errReader{}, 0644)
	require.Error(t, err)

	got, err := afero.ReadFile(fs, "/out/log.xml")
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got))

	exists, _ := afero.Exists(fs, "/out/log.xml"+TempSuffix)
	assert.False(t, exists)
}

func TestCopyFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := bytes.Repeat([]byte{0x00, 0xff, 0x10, '\n'}, 4096)
	require.NoError(t, afero.WriteFile(fs, "/src/bin.dat", data, 0600))
	mtime := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, fs.Chtimes("/src/bin.dat", mtime, mtime))

	require.NoError(t, CopyFile(fs, "/src/bin.dat", "/dst/bin.dat"))

	got, err := afero.ReadFile(fs, "/dst/bin.dat")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	info, err := fs.Stat("/dst/bin.dat")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(mtime))
}

func TestCopyFile_MissingSource(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := CopyFile(fs, "/src/none.txt", "/dst/none.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRemoveIfExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/dst/c.txt", []byte("c"), 0644))

	require.NoError(t, RemoveIfExists(fs, "/dst/c.txt"))
	require.NoError(t, RemoveIfExists(fs, "/dst/c.txt"))

	exists, _ := afero.Exists(fs, "/dst/c.txt")
	assert.False(t, exists)
}
