// Package refmap provides a minimal public API for embedding the issue
// reference remapper in other tools.
//
// Most callers should use the refmap CLI. This package exports only the
// essential types and functions needed to load a mapping and rewrite
// references programmatically, for migration drivers that walk their own
// file sets and don't want to shell out.
package refmap

import (
	"github.com/steveyegge/refmap/internal/mapping"
	"github.com/steveyegge/refmap/internal/remap"
)

// Core types for working with mappings and rewrites
type (
	Table      = mapping.Table
	Change     = remap.Change
	LineChange = remap.LineChange
	FileResult = remap.FileResult
	ScanEntry  = remap.ScanEntry
)

// LoadMapping reads an old->new issue-number table from a JSON mapping file.
func LoadMapping(path string) (Table, error) {
	return mapping.Load(path)
}

// Rewrite applies the table to content and returns the rewritten content,
// the per-line change records, and the total number of references changed.
// Line terminators are preserved exactly.
func Rewrite(content string, table Table) (string, []LineChange, int) {
	return remap.RewriteContent(content, table)
}

// ProcessFile computes the rewrite for one file without writing anything.
func ProcessFile(path string, table Table) (*FileResult, error) {
	return remap.ProcessFile(path, table)
}

// WriteFile atomically replaces path with content.
func WriteFile(path, content string) error {
	return remap.WriteFile(path, content)
}

// Discover walks root and returns candidate files matching the given
// extensions, sorted, skipping hidden and dependency directories.
func Discover(root string, extensions []string) ([]string, error) {
	return remap.Discover(root, extensions)
}
