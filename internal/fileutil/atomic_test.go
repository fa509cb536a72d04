package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	filename := filepath.Join(dir, "scores.txt")

	require.NoError(t, WriteFileAtomic(filename, []byte("first"), 0o600))
	require.NoError(t, WriteFileAtomic(filename, []byte("second"), 0o600))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files are cleaned up")
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	t.Parallel()

	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "out.txt"), []byte("x"), 0o644)
	require.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, WriteJSON(filename, map[string]any{"winners": []int{1}}))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.JSONEq(t, `{"winners":[1]}`, string(data))

	assert.Error(t, WriteJSON(filename, make(chan int)))
}
