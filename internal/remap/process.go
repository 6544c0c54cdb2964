package remap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/steveyegge/refmap/internal/mapping"
)

// ProcessFile reads path and computes its rewrite under table. Nothing is
// written; pair with WriteFile to persist the result.
func ProcessFile(path string, table mapping.Table) (*FileResult, error) {
	data, err := os.ReadFile(path) // #nosec G304 - paths come from Discover
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	newContent, lineChanges, total := RewriteContent(string(data), table)
	return &FileResult{
		Path:        path,
		NewContent:  newContent,
		LineChanges: lineChanges,
		Total:       total,
	}, nil
}

// WriteFile replaces path's content atomically: content goes to a temp file
// in the same directory, which is then renamed over the original. A crash
// mid-write leaves the original untouched. The original file mode is kept.
func WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tempFile, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath) // Clean up temp file on error
	}()

	if _, err := tempFile.WriteString(content); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tempFile.Chmod(mode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
