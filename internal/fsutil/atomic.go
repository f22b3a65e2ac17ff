// Package fsutil writes converted projects to disk.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var (
	// ErrLocked is returned when another process is writing the same output.
	ErrLocked = errors.New("output is locked by another writer")
	// ErrExists is returned when the output exists and replacing it was not requested.
	ErrExists = errors.New("output already exists")
)

// WriteOptions controls WriteFileAtomic.
type WriteOptions struct {
	Perm      fs.FileMode
	Overwrite bool
}

// WriteFileAtomic writes data to a temp file beside path and renames it into
// place, so readers never observe a partially written project. A sibling
// "<path>.lock" file serialises writers across processes.
func WriteFileAtomic(path string, data []byte, opts WriteOptions) (err error) {
	if opts.Perm == 0 {
		opts.Perm = 0o644
	}
	dir := filepath.Dir(path)

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}()

	if !opts.Overwrite {
		if _, statErr := os.Stat(path); statErr == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return statErr
		}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, opts.Perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
