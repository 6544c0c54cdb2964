package remap

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/steveyegge/refmap/internal/debug"
)

// Discover walks the tree rooted at root and returns every file whose name
// matches one of extensions (leading dot optional), sorted for deterministic
// processing order. Hidden directories, vendor, and node_modules are never
// descended into; hidden files in visible directories are still included.
func Discover(root string, extensions []string) ([]string, error) {
	suffixes := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}
		suffixes = append(suffixes, "."+ext)
	}

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable entries
		}
		name := info.Name()
		if info.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		for _, suffix := range suffixes {
			if strings.HasSuffix(name, suffix) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ScanFiles reads each candidate file and keeps those containing at least one
// issue reference. Unreadable files are excluded and returned separately; the
// exclusion is logged through the debug logger so a surprising skip can be
// traced with --verbose.
func ScanFiles(files []string) ([]ScanEntry, []string) {
	var (
		entries []ScanEntry
		skipped []string
	)
	for _, path := range files {
		data, err := os.ReadFile(path) // #nosec G304 - paths come from Discover
		if err != nil {
			debug.Logf("refmap: skipping unreadable file %s: %v\n", path, err)
			skipped = append(skipped, path)
			continue
		}
		if n := CountReferences(data); n > 0 {
			entries = append(entries, ScanEntry{Path: path, References: n})
		}
	}
	return entries, skipped
}
