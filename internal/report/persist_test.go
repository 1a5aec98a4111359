package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirPersister_WritesFile(t *testing.T) {
	dir := t.TempDir()

	path, err := NewDirPersister(dir).Persist(context.Background(), []byte("data"), "r.pdf")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "r.pdf"), path)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
	assertNoStaging(t, dir)
}

func TestDirPersister_DoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "r.pdf"), []byte("old"), 0644))
	p := NewDirPersister(dir)

	first, err := p.Persist(context.Background(), []byte("new"), "r.pdf")
	require.NoError(t, err)
	second, err := p.Persist(context.Background(), []byte("newer"), "r.pdf")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "r (1).pdf"), first)
	assert.Equal(t, filepath.Join(dir, "r (2).pdf"), second)
	old, err := os.ReadFile(filepath.Join(dir, "r.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(old))
}

func TestDirPersister_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	path, err := NewDirPersister(dir).Persist(context.Background(), []byte("x"), "a.pdf")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestDirPersister_CanceledContextLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDirPersister(dir).Persist(ctx, []byte("x"), "a.pdf")

	var persistErr *PersistError
	require.ErrorAs(t, err, &persistErr)
	assert.ErrorIs(t, err, context.Canceled)
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestDirPersister_UnwritableDirectory(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewDirPersister(filepath.Join(blocker, "sub")).Persist(context.Background(), []byte("x"), "a.pdf")

	var persistErr *PersistError
	assert.ErrorAs(t, err, &persistErr)
}

func assertNoStaging(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".report-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
