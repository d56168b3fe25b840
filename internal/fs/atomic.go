package fs

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
)

// TempSuffix marks in-flight writes. Files carrying it are never complete.
const TempSuffix = ".tmp"

const createTempAttempts = 10

// WriteFileAtomic writes data to name so that name either keeps its previous
// content or holds all of data. Every call writes its own temp file next to
// name, so concurrent writers never share one. On failure the temp file is
// removed.
func WriteFileAtomic(fsys FileSystem, name string, data []byte, perm os.FileMode) error {
	f, tmpPath, err := createTemp(fsys, name, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		fsys.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		fsys.Remove(tmpPath)
		return err
	}

	if err := fsys.Rename(tmpPath, name); err != nil {
		fsys.Remove(tmpPath)
		return err
	}

	return syncDir(fsys, filepath.Dir(name))
}

// createTemp opens a new, uniquely named temp file beside name. The name
// ends in TempSuffix.
func createTemp(fsys FileSystem, name string, perm os.FileMode) (File, string, error) {
	for range createTempAttempts {
		tmpPath := name + "." + strconv.FormatUint(rand.Uint64(), 36) + TempSuffix
		f, err := fsys.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return nil, "", err
		}
		return f, tmpPath, nil
	}
	return nil, "", &os.PathError{Op: "createtemp", Path: name + ".*" + TempSuffix, Err: os.ErrExist}
}

// syncDir persists the rename. Not every platform can fsync a directory;
// those report an error from Sync which is ignored.
func syncDir(fsys FileSystem, dir string) error {
	d, err := fsys.OpenFile(dir, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	_ = d.Sync()
	return d.Close()
}
