package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_Write(t *testing.T) {
	workspace := t.TempDir()
	storage := NewFileStorage(workspace, "")

	require.NoError(t, storage.Write("results/run.json", []byte(`{"ok":true}`)))

	data, err := os.ReadFile(filepath.Join(workspace, "results", "run.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))
}

func TestFileStorage_Mirror(t *testing.T) {
	workspace := t.TempDir()
	mirror := t.TempDir()
	storage := NewFileStorage(workspace, mirror)

	require.NoError(t, storage.Write("run.json", []byte(`{"id":"i-100"}`)))

	local, err := os.ReadFile(filepath.Join(workspace, "run.json"))
	require.NoError(t, err)
	mirrored, err := os.ReadFile(filepath.Join(mirror, "run.json"))
	require.NoError(t, err)

	// Both locations hold identical bytes
	assert.Equal(t, local, mirrored)
}

func TestFileStorage_MirrorSameAsWorkspace(t *testing.T) {
	workspace := t.TempDir()
	storage := NewFileStorage(workspace, workspace)

	require.NoError(t, storage.Write("run.json", []byte("x")))

	entries, err := os.ReadDir(workspace)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStorage_AbsolutePath(t *testing.T) {
	workspace := t.TempDir()
	mirror := t.TempDir()
	storage := NewFileStorage(workspace, mirror)

	target := filepath.Join(t.TempDir(), "out", "run.json")
	require.NoError(t, storage.Write(target, []byte("abs")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "abs", string(data))

	// Absolute paths are not mirrored
	_, err = os.Stat(filepath.Join(mirror, "out"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorage_Overwrite(t *testing.T) {
	workspace := t.TempDir()
	storage := NewFileStorage(workspace, "")

	require.NoError(t, storage.Write("run.json", []byte("first")))
	require.NoError(t, storage.Write("run.json", []byte("second")))

	data, err := os.ReadFile(filepath.Join(workspace, "run.json"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
