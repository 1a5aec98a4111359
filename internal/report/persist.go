package report

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxNameAttempts bounds the numeric suffixes tried when a name is taken.
const maxNameAttempts = 1000

// DirPersister writes reports into a directory on the local file system.
// Bytes are staged in a temp file and renamed into place, so a failed save
// never leaves a partial report behind.
type DirPersister struct {
	Dir string
}

// NewDirPersister creates a persister rooted at dir.
func NewDirPersister(dir string) *DirPersister {
	return &DirPersister{Dir: dir}
}

// Persist implements Persister.
func (p *DirPersister) Persist(ctx context.Context, data []byte, suggestedName string) (path string, err error) {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return "", &PersistError{Path: p.Dir, Cause: err}
	}

	staging, err := os.CreateTemp(p.Dir, ".report-*.partial")
	if err != nil {
		return "", &PersistError{Path: p.Dir, Cause: err}
	}
	stagingPath := staging.Name()
	defer func() {
		if err != nil {
			_ = staging.Close()
			_ = os.Remove(stagingPath)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", &PersistError{Path: stagingPath, Cause: err}
	}
	if _, err := staging.Write(data); err != nil {
		return "", &PersistError{Path: stagingPath, Cause: err}
	}
	if err := staging.Close(); err != nil {
		return "", &PersistError{Path: stagingPath, Cause: err}
	}

	target, err := p.claim(suggestedName)
	if err != nil {
		return "", err
	}
	if err := os.Rename(stagingPath, target); err != nil {
		_ = os.Remove(target)
		return "", &PersistError{Path: target, Cause: err}
	}
	return target, nil
}

// claim reserves a file name that does not exist yet, adding " (n)" before the
// extension when needed.
func (p *DirPersister) claim(name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for i := 0; i < maxNameAttempts; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(p.Dir, candidate)
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", &PersistError{Path: path, Cause: err}
		}
		_ = f.Close()
		return path, nil
	}
	return "", &PersistError{Path: filepath.Join(p.Dir, name), Cause: fs.ErrExist}
}
