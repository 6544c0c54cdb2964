// Package remap implements the reference-rewrite pipeline: discover candidate
// files, filter to those containing issue references, rewrite references per
// the mapping table, and persist results atomically.
package remap

// Change is a single reference rewrite on a line, #Old -> #New.
type Change struct {
	Old int
	New int
}

// LineChange records every rewrite on one line, with the line's before and
// after text (trailing whitespace stripped) for report display.
type LineChange struct {
	Line    int
	Changes []Change
	OldText string
	NewText string
}

// FileResult is the computed rewrite for one file. Nothing has been written;
// pair with WriteFile to persist NewContent.
type FileResult struct {
	Path        string
	NewContent  string
	LineChanges []LineChange
	Total       int
}

// Changed reports whether the file has at least one rewrite.
func (r *FileResult) Changed() bool {
	return r.Total > 0
}

// ScanEntry is one reference-bearing file found during a scan.
type ScanEntry struct {
	Path       string `json:"path"`
	References int    `json:"references"`
}

// RunStats accumulates run-level counters across a remap run.
// FilesScanned counts files passing the reference pre-filter. TotalChanges
// counts attempted rewrites, including those in files whose write failed;
// FilesChanged counts only files actually persisted (or that would be, in a
// dry run).
type RunStats struct {
	FilesScanned  int
	FilesChanged  int
	TotalChanges  int
	WriteFailures int
}
