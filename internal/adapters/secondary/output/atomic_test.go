package output

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	t.Run("writes and creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "deck.html")

		require.NoError(t, WriteFile(path, []byte("<html>"), 0o644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<html>", string(data))
	})

	t.Run("replaces existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.yaml")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		require.NoError(t, WriteFile(path, []byte("new"), 0o644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("through the port", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "deck.html")

		require.NoError(t, Writer{}.WriteFile(path, []byte("deck"), 0o600))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, int64(4), info.Size())
	})

	t.Run("leaves no temporary files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestPendingFile_Commit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	t.Run("default mode when written by another process", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "video.mp4")

		pending, err := Create(dest)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(pending.Path(), []byte("frames"), 0o600))
		require.NoError(t, pending.Commit())

		info, err := os.Stat(dest)
		require.NoError(t, err)
		assert.Equal(t, DefaultMode, info.Mode().Perm())

		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "frames", string(data))
	})

	t.Run("write file applies the requested mode", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "deck.html")

		require.NoError(t, WriteFile(dest, []byte("deck"), 0o600))

		info, err := os.Stat(dest)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}

func TestPendingFile_Discard(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "video.mp4")

	pending, err := Create(dest)
	require.NoError(t, err)
	_, err = pending.File.WriteString("partial")
	require.NoError(t, err)

	pending.Discard()
	pending.Discard()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoFileExists(t, dest)
	assert.NoError(t, pending.Commit(), "commit after discard is a no-op")
	assert.NoFileExists(t, dest)
}
