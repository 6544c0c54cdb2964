package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/steveyegge/refmap/internal/debug"
)

// captureOutput runs fn with stdout redirected and returns everything written.
func captureOutput(fn func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	fn()
	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// setupApplyTest chdirs into a fresh temp dir and resets the persistent flag
// state the commands read.
func setupApplyTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Chdir(tmp)
	applyCmd.SetContext(context.Background())
	jsonOutput = false
	applyDryRun = false
	rootDir = "."
	extFlags = []string{"swift"}
	return tmp
}

func writeSourceFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeMappingFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "mapping.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write mapping: %v", err)
	}
	return path
}

func TestApplyRewritesReferences(t *testing.T) {
	tmp := setupApplyTest(t)
	writeSourceFile(t, tmp, "App.swift", "// See #10 and #20 and #30.\nlet x = 1\n")
	mappingPath := writeMappingFile(t, tmp, `{"mappings": {"10": 50, "20": 20}}`)

	output := captureOutput(func() {
		runApply(applyCmd, mappingPath)
	})

	data, err := os.ReadFile(filepath.Join(tmp, "App.swift"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "// See #50 and #20 and #30.\nlet x = 1\n"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", string(data), want)
	}

	for _, fragment := range []string{
		"Source Code Issue Reference Remapper",
		"[INFO] Loaded 2 issue mappings",
		"[UPDATE] App.swift",
		"Making 1 change(s):",
		"Line 1: #10 -> #50",
		"- // See #10 and #20 and #30.",
		"+ // See #50 and #20 and #30.",
		"Updated App.swift",
		"Remapping Complete!",
		"[SUMMARY] Files scanned: 1",
		"[SUMMARY] Files changed: 1",
		"[SUMMARY] Total reference changes: 1",
	} {
		if !strings.Contains(output, fragment) {
			t.Errorf("output missing %q\noutput:\n%s", fragment, output)
		}
	}
	if strings.Contains(output, "[DRY RUN") {
		t.Errorf("unexpected dry-run marker in output:\n%s", output)
	}
}

func TestApplyDryRunLeavesFilesUntouched(t *testing.T) {
	tmp := setupApplyTest(t)
	content := "// fixes #7\n"
	writeSourceFile(t, tmp, "A.swift", content)
	mappingPath := writeMappingFile(t, tmp, `{"mappings": {"7": 130}}`)
	applyDryRun = true

	output := captureOutput(func() {
		runApply(applyCmd, mappingPath)
	})

	data, err := os.ReadFile(filepath.Join(tmp, "A.swift"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != content {
		t.Errorf("dry run modified file: %q", string(data))
	}

	for _, fragment := range []string{
		"[DRY RUN MODE] No files will be modified",
		"Line 1: #7 -> #130",
		"[DRY RUN] Would update A.swift",
		"[SUMMARY] Files changed: 1",
		"[DRY RUN] This was a dry run. Re-run without --dry-run to apply changes.",
	} {
		if !strings.Contains(output, fragment) {
			t.Errorf("output missing %q\noutput:\n%s", fragment, output)
		}
	}
	if strings.Contains(output, "Updated A.swift") {
		t.Errorf("dry run claimed to update a file:\n%s", output)
	}
}

func TestApplyDiffSuppressedForLargeChanges(t *testing.T) {
	tmp := setupApplyTest(t)
	var sb strings.Builder
	for i := 0; i < 11; i++ {
		sb.WriteString("ref #10\n")
	}
	writeSourceFile(t, tmp, "Big.swift", sb.String())
	mappingPath := writeMappingFile(t, tmp, `{"mappings": {"10": 50}}`)

	output := captureOutput(func() {
		runApply(applyCmd, mappingPath)
	})

	if !strings.Contains(output, "Making 11 change(s):") {
		t.Errorf("missing change count:\n%s", output)
	}
	if !strings.Contains(output, "Line 11: #10 -> #50") {
		t.Errorf("missing per-line change reports:\n%s", output)
	}
	// Files with more than diff-limit changed lines list changes without
	// the before/after snippet.
	if strings.Contains(output, "- ref #10") || strings.Contains(output, "+ ref #50") {
		t.Errorf("diff snippet should be suppressed for 11 changed lines:\n%s", output)
	}
}

func TestApplyNoRewritesForUnmappedAndIdentity(t *testing.T) {
	tmp := setupApplyTest(t)
	content := "see #30, and #20 stays\n"
	writeSourceFile(t, tmp, "Calm.swift", content)
	mappingPath := writeMappingFile(t, tmp, `{"mappings": {"10": 50, "20": 20}}`)

	output := captureOutput(func() {
		runApply(applyCmd, mappingPath)
	})

	data, err := os.ReadFile(filepath.Join(tmp, "Calm.swift"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != content {
		t.Errorf("file modified without mapped references: %q", string(data))
	}
	if strings.Contains(output, "[UPDATE]") {
		t.Errorf("unexpected update block:\n%s", output)
	}
	for _, fragment := range []string{
		"[SUMMARY] Files scanned: 1",
		"[SUMMARY] Files changed: 0",
		"[SUMMARY] Total reference changes: 0",
	} {
		if !strings.Contains(output, fragment) {
			t.Errorf("output missing %q\noutput:\n%s", fragment, output)
		}
	}
}

func TestApplyJSONReport(t *testing.T) {
	tmp := setupApplyTest(t)
	writeSourceFile(t, tmp, "App.swift", "// See #10 and #20 and #30.\n")
	mappingPath := writeMappingFile(t, tmp, `{"mappings": {"10": 50, "20": 20}}`)
	jsonOutput = true

	output := captureOutput(func() {
		runApply(applyCmd, mappingPath)
	})

	var report applyReportJSON
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("invalid JSON output: %v\noutput:\n%s", err, output)
	}
	if report.DryRun {
		t.Error("dry_run should be false")
	}
	if report.FilesScanned != 1 || report.FilesChanged != 1 || report.TotalChanges != 1 || report.WriteFailures != 0 {
		t.Errorf("unexpected counters: %+v", report)
	}
	if len(report.Files) != 1 {
		t.Fatalf("expected 1 file entry, got %d", len(report.Files))
	}
	f := report.Files[0]
	if f.Path != "App.swift" {
		t.Errorf("path = %q", f.Path)
	}
	if len(f.Changes) != 1 || f.Changes[0] != (applyChangeJSON{Line: 1, Old: 10, New: 50}) {
		t.Errorf("unexpected changes: %+v", f.Changes)
	}

	data, err := os.ReadFile(filepath.Join(tmp, "App.swift"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "// See #50 and #20 and #30.\n" {
		t.Errorf("file not rewritten in JSON mode: %q", string(data))
	}
}

func TestApplyQuietSuppressesInfo(t *testing.T) {
	tmp := setupApplyTest(t)
	writeSourceFile(t, tmp, "A.swift", "#10\n")
	mappingPath := writeMappingFile(t, tmp, `{"mappings": {"10": 50}}`)
	debug.SetQuiet(true)
	defer debug.SetQuiet(false)

	output := captureOutput(func() {
		runApply(applyCmd, mappingPath)
	})

	if strings.Contains(output, "[INFO]") {
		t.Errorf("quiet mode printed [INFO] lines:\n%s", output)
	}
	if !strings.Contains(output, "[UPDATE] A.swift") {
		t.Errorf("quiet mode lost the update record:\n%s", output)
	}
	if !strings.Contains(output, "[SUMMARY] Files changed: 1") {
		t.Errorf("quiet mode lost the summary:\n%s", output)
	}
}

func TestDisplayPath(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	inside := filepath.Join(cwd, "a", "b.swift")
	if got := displayPath(inside); got != filepath.Join("a", "b.swift") {
		t.Errorf("displayPath(%q) = %q", inside, got)
	}

	outside := filepath.Join(filepath.Dir(cwd), "elsewhere.swift")
	if got := displayPath(outside); got != outside {
		t.Errorf("displayPath(%q) = %q, want unchanged", outside, got)
	}

	// Relative inputs that cannot be made relative to an absolute cwd pass
	// through unchanged.
	if got := displayPath("already/relative.swift"); got != "already/relative.swift" {
		t.Errorf("displayPath(relative) = %q", got)
	}
}

func TestEffectiveTargetDefaults(t *testing.T) {
	oldRoot, oldExts := rootDir, extFlags
	defer func() { rootDir, extFlags = oldRoot, oldExts }()

	rootDir = ""
	extFlags = nil
	root, exts := effectiveTarget()
	if root != "." {
		t.Errorf("root = %q, want .", root)
	}
	if len(exts) != 1 || exts[0] != "swift" {
		t.Errorf("extensions = %v, want [swift]", exts)
	}

	rootDir = "Sources"
	extFlags = []string{"md", "swift"}
	root, exts = effectiveTarget()
	if root != "Sources" {
		t.Errorf("root = %q", root)
	}
	if len(exts) != 2 {
		t.Errorf("extensions = %v", exts)
	}
}
