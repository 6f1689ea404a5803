package utils

import (
	"bytes"
	"os"
	"path/filepath"
)

// EnsureDir ensures a directory exists, creating it if necessary
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// EnsureParentDir ensures the parent directory of a file path exists
func EnsureParentDir(path string) error {
	return EnsureDir(filepath.Dir(path))
}

// FileExists checks whether a regular file exists at path
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteFileIfChanged writes data to path unless the file already holds the
// same bytes. It reports whether the file was written.
func WriteFileIfChanged(path string, data []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, err
	}
	return true, nil
}
