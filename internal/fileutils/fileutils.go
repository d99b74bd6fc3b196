// Package fileutils provides the file operations used by the commands.
package fileutils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"fjacquet/qfx-rebank/internal/qfxerror"
)

// FileExists checks if a file exists and is not a directory.
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists.
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates dirPath and its parents if needed.
func EnsureDirectoryExists(dirPath string) error {
	if dirPath == "" || DirectoryExists(dirPath) {
		return nil
	}
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// ReadTextFile reads a UTF-8 text file. A missing file yields a
// FileNotFoundError and invalid UTF-8 a MalformedDocumentError.
func ReadTextFile(filePath string) (string, error) {
	if !FileExists(filePath) {
		return "", &qfxerror.FileNotFoundError{FilePath: filePath, Err: fs.ErrNotExist}
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- CLI tool reads user-provided paths
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &qfxerror.FileNotFoundError{FilePath: filePath, Err: err}
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	if !utf8.Valid(data) {
		return "", &qfxerror.MalformedDocumentError{FilePath: filePath, Reason: "file is not valid UTF-8 text"}
	}
	return string(data), nil
}

// WriteFile writes data to filePath in one go, creating parent directories.
func WriteFile(filePath string, data []byte, perm os.FileMode) error {
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return err
	}

	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) // #nosec G304 -- CLI tool writes user-provided paths
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
