package fileset

import (
	"context"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-matcher/internal/types"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds how many files LoadFiles reads at once.
const maxConcurrentLoads = 4

// LoadFile reads a document from disk. The FileRef is named after the file's base name.
func LoadFile(path string) (types.FileRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.FileRef{}, &LoadError{Path: path, Cause: err}
	}
	return types.NewFileRef(filepath.Base(path), data), nil
}

// LoadFiles reads several documents concurrently and returns them in input order.
func LoadFiles(ctx context.Context, paths []string) ([]types.FileRef, error) {
	files := make([]types.FileRef, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file, err := LoadFile(path)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
