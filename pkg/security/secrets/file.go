package secrets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSource loads credentials from individual files in a directory.
//
// This supports Kubernetes-style secret mounting where each key is stored
// as a separate file named after the key. File permissions are validated
// to ensure secrets are properly protected (0600 or 0400 only).
type FileSource struct {
	BasePath string
}

// NewFileSource creates a new file-based source rooted at basePath.
func NewFileSource(basePath string) *FileSource {
	return &FileSource{BasePath: basePath}
}

// Lookup reads <BasePath>/<key> on every call.
//
// A missing file is an absent credential. Surrounding whitespace is trimmed.
func (s *FileSource) Lookup(_ context.Context, key string) (string, error) {
	path := filepath.Join(s.BasePath, key)

	// Validate path is within BasePath (prevent directory traversal)
	absBase, err := filepath.Abs(s.BasePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve secret path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid secret path %q: directory traversal detected", key)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to stat secret file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("secret path is not a regular file: %s", key)
	}

	mode := info.Mode().Perm()
	if mode != 0600 && mode != 0400 {
		return "", fmt.Errorf("insecure permissions on %s: %o (expected 0600 or 0400)", path, mode)
	}

	// #nosec G304 - Path is validated above to prevent directory traversal
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Name returns the source name.
func (s *FileSource) Name() string {
	return "file"
}
