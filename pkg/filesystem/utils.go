// Package filesystem holds small file and permission helpers.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Common file system errors
var (
	ErrDirNotFound = errors.New("directory not found")
)

// otherRead is the permission bit granting read access to everyone
const otherRead fs.FileMode = 0o004

// IsWorldReadable reports whether mode lets any user read the file
func IsWorldReadable(mode fs.FileMode) bool {
	return mode.Perm()&otherRead != 0
}

// IsRegular reports whether mode describes a plain file.
// Symlinks, directories, devices, pipes and sockets are not regular.
func IsRegular(mode fs.FileMode) bool {
	return mode.IsRegular()
}

// GetDefaultPath returns a default file path in the executable directory
func GetDefaultPath(filename string) (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}

	exeDir := filepath.Dir(exePath)
	return filepath.Join(exeDir, filename), nil
}

// ResolvePath returns path unchanged if it is absolute or exists relative to
// the working directory. Otherwise it tries the executable directory and
// falls back to the original path when nothing is found there either.
func ResolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if execPath, err := GetDefaultPath(path); err == nil {
		if _, err := os.Stat(execPath); err == nil {
			return execPath
		}
	}
	return path
}

// EnsureDirectoryExists creates the directory for the given file path if it doesn't exist
func EnsureDirectoryExists(filePath string) error {
	dir := filepath.Dir(filePath)
	if dir == "." {
		return nil // Current directory
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrDirNotFound, dir)
		}
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}
