package fs

import (
	"os"

	"github.com/go-git/go-billy/v5"
)

// RemoveAll removes path and any children it contains.
// A missing path is not an error.
func RemoveAll(fsys billy.Filesystem, path string) error {
	info, err := fsys.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if info.IsDir() {
		entries, err := fsys.ReadDir(path)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := RemoveAll(fsys, fsys.Join(path, entry.Name())); err != nil {
				return err
			}
		}
	}

	return fsys.Remove(path)
}
