package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iconforge/iconforge/internal/errors"
)

// KindOf classifies path by extension (case-insensitive).
func KindOf(path string) InputKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return KindStylesheet
	case ".json":
		return KindDocument
	}
	return KindUnknown
}

// ValidateInput checks an input file before it is read.
// The extension is checked first, so an unsupported file is reported as such
// even when it does not exist.
func ValidateInput(path string) (InputKind, error) {
	if strings.TrimSpace(path) == "" {
		return KindUnknown, errors.NewInvalidRequest("path is required")
	}

	kind := KindOf(path)
	if kind == KindUnknown {
		return KindUnknown, errors.NewUnsupportedFormat(path)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return kind, errors.NewFileNotFound(path)
	}
	if err != nil {
		return kind, errors.NewInternal(fmt.Errorf("failed to stat input: %w", err))
	}
	if info.IsDir() {
		return kind, errors.NewInvalidRequest(fmt.Sprintf("input must be a file, not a directory: %s", path))
	}
	return kind, nil
}

// validateOutput rejects output paths that are directories or symlinks.
// A missing file is fine; it will be created.
func validateOutput(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.NewInvalidRequest("output path is required")
	}
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to stat output: %w", err))
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInvalidRequest("output path must not be a symlink")
	}
	if info.IsDir() {
		return errors.NewInvalidRequest(fmt.Sprintf("output path is a directory: %s", path))
	}
	return nil
}

// samePath reports whether a and b name the same location after cleaning.
func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
