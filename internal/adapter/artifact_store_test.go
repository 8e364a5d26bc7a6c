package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

func TestLocalArtifactStore_WriteLayer(t *testing.T) {
	dir := t.TempDir()
	path := m.Path(filepath.Join(dir, "nested", "out", "truth_fix.usda"))
	store := NewLocalArtifactStore()

	require.NoError(t, store.WriteLayer(path, "#usda 1.0\n"))

	data, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.Equal(t, "#usda 1.0\n", string(data))

	require.NoError(t, store.WriteLayer(path, "#usda 1.0\n\nover \"World\"\n{\n}\n"))

	data, err = os.ReadFile(string(path))
	require.NoError(t, err)
	assert.Equal(t, "#usda 1.0\n\nover \"World\"\n{\n}\n", string(data))
}

func TestLocalArtifactStore_Failures(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o644))

	store := NewLocalArtifactStore()

	var writeErr *m.WriteError

	err := store.EnsureDir(m.Path(filepath.Join(blocker, "out")))
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, m.Path(filepath.Join(blocker, "out")), writeErr.Path)

	err = store.WriteLayer(m.Path(filepath.Join(blocker, "out", "fix.usda")), "x")
	require.ErrorAs(t, err, &writeErr)

	err = store.WriteLayer(m.Path(dir), "x")
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, m.Path(dir), writeErr.Path)
}
