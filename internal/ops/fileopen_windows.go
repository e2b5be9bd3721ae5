//go:build windows

package ops

import (
	"os"

	"github.com/iconforge/iconforge/internal/errors"
)

// openFileNoFollow opens a file for writing.
// O_NOFOLLOW does not exist on Windows; validateOutput still rejects symlinked destinations.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}

// openFileNoFollowRead opens an input file for reading.
func openFileNoFollowRead(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFound(path)
		}
		return nil, err
	}
	return f, nil
}
