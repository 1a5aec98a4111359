package fileset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "resume.pdf", "%PDF-1.4 body")

	file, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", file.Name())
	assert.Equal(t, int64(13), file.Size())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("/nonexistent/resume.pdf")
	require.Error(t, err)

	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFiles_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"c.pdf", "a.pdf", "b.pdf", "e.pdf", "d.pdf", "f.pdf"} {
		paths = append(paths, writeFile(t, dir, name, name))
	}

	files, err := LoadFiles(context.Background(), paths)
	require.NoError(t, err)
	assert.Equal(t, []string{"c.pdf", "a.pdf", "b.pdf", "e.pdf", "d.pdf", "f.pdf"}, names(files))
}

func TestLoadFiles_FailsOnAnyMissing(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.pdf", "a"),
		filepath.Join(dir, "missing.pdf"),
	}

	files, err := LoadFiles(context.Background(), paths)
	require.Error(t, err)
	assert.Nil(t, files)
	assert.Contains(t, err.Error(), "missing.pdf")
}
