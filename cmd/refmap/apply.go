package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/steveyegge/refmap/internal/config"
	"github.com/steveyegge/refmap/internal/debug"
	"github.com/steveyegge/refmap/internal/mapping"
	"github.com/steveyegge/refmap/internal/remap"
	"github.com/steveyegge/refmap/internal/telemetry"
	"github.com/steveyegge/refmap/internal/ui"
)

const bannerWidth = 70

var applyDryRun bool

var applyCmd = &cobra.Command{
	Use:   "apply <mapping-file>",
	Short: "Rewrite issue references per an old->new mapping",
	Long: `Reads a JSON mapping of old issue numbers to new ones, scans the source
tree for #123-style references, and rewrites every reference whose number
is mapped to a different number. References to unmapped numbers and
identity mappings are left untouched. Files are rewritten in place via an
atomic replace; --dry-run reports the same changes without writing.`,
	Example: `  refmap apply mapping.json
  refmap apply mapping.json --dry-run
  refmap apply mapping.json --dir Sources --ext swift --ext md`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			// Usage on stdout so the no-argument invocation reads as help,
			// with a failure exit code for scripted callers.
			_ = cmd.Help()
			os.Exit(1)
		}
		runApply(cmd, args[0])
	},
}

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Report changes without modifying any file")
	rootCmd.AddCommand(applyCmd)
}

// applyChangeJSON is one rewrite in --json output.
type applyChangeJSON struct {
	Line int `json:"line"`
	Old  int `json:"old"`
	New  int `json:"new"`
}

type applyFileJSON struct {
	Path    string            `json:"path"`
	Changes []applyChangeJSON `json:"changes"`
}

type applyReportJSON struct {
	DryRun        bool            `json:"dry_run"`
	FilesScanned  int             `json:"files_scanned"`
	FilesChanged  int             `json:"files_changed"`
	TotalChanges  int             `json:"total_changes"`
	WriteFailures int             `json:"write_failures"`
	Files         []applyFileJSON `json:"files"`
}

func runApply(cmd *cobra.Command, mappingPath string) {
	start := time.Now()
	ctx, span := telemetry.Tracer("github.com/steveyegge/refmap/cmd").Start(cmd.Context(), "refmap.apply")
	defer span.End()
	span.SetAttributes(
		attribute.Bool("refmap.dry_run", applyDryRun),
		attribute.String("refmap.mapping_file", mappingPath),
	)

	human := !jsonOutput
	root, extensions := effectiveTarget()

	if human {
		printBanner("Source Code Issue Reference Remapper")
		if applyDryRun {
			fmt.Printf("%s\n", ui.RenderWarn("[DRY RUN MODE] No files will be modified"))
		}
		fmt.Println()
		debug.PrintNormal("[INFO] Loading mapping from %s...\n", mappingPath)
	}

	table, err := mapping.Load(mappingPath)
	if err != nil {
		if jsonOutput {
			outputJSONError(err, "mapping")
		}
		FatalErrorWithHint(
			err.Error(),
			`mapping files look like {"mappings": {"10": 50, "20": 60}}`,
		)
	}

	if human {
		debug.PrintNormal("[INFO] Loaded %d issue mappings\n\n", len(table))
		debug.PrintNormal("[INFO] Finding source files...\n")
	}

	files, err := remap.Discover(root, extensions)
	if err != nil {
		if jsonOutput {
			outputJSONError(err, "discover")
		}
		FatalError("%v", err)
	}

	if human {
		debug.PrintNormal("[INFO] Found %d source files\n", len(files))
		debug.PrintNormal("[INFO] Scanning for issue references...\n")
	}

	entries, _ := remap.ScanFiles(files)

	if human {
		debug.PrintNormal("[INFO] Found %d files with issue references\n\n", len(entries))
	}

	stats := remap.RunStats{FilesScanned: len(entries)}
	report := applyReportJSON{DryRun: applyDryRun, Files: []applyFileJSON{}}
	diffLimit := config.GetInt("diff-limit")

	for _, entry := range entries {
		result, err := remap.ProcessFile(entry.Path, table)
		if err != nil {
			if human {
				fmt.Printf("%s %v\n", ui.RenderFail("[ERROR]"), err)
			} else {
				WarnError("%v", err)
			}
			continue
		}
		if !result.Changed() {
			continue
		}

		display := displayPath(result.Path)
		if human {
			printFileChanges(result, display, diffLimit)
		}
		stats.TotalChanges += result.Total
		if jsonOutput {
			report.Files = append(report.Files, fileJSON(result, display))
		}

		switch {
		case applyDryRun:
			stats.FilesChanged++
			if human {
				fmt.Printf("  %s\n\n", ui.RenderWarn("[DRY RUN] Would update "+display))
			}
		default:
			if err := remap.WriteFile(result.Path, result.NewContent); err != nil {
				stats.WriteFailures++
				if human {
					fmt.Printf("  %s\n\n", ui.RenderFail(ui.IconFail+" Failed to write "+display+": "+err.Error()))
				} else {
					WarnError("failed to write %s: %v", display, err)
				}
			} else {
				stats.FilesChanged++
				if human {
					fmt.Printf("  %s\n\n", ui.RenderPass(ui.IconPass+" Updated "+display))
				}
			}
		}
	}

	span.SetAttributes(
		attribute.Int("refmap.files_scanned", stats.FilesScanned),
		attribute.Int("refmap.files_changed", stats.FilesChanged),
		attribute.Int("refmap.total_changes", stats.TotalChanges),
		attribute.Int("refmap.write_failures", stats.WriteFailures),
	)
	remap.RecordRun(ctx, stats, applyDryRun, time.Since(start))

	if human {
		printBanner("Remapping Complete!")
		fmt.Printf("[SUMMARY] Files scanned: %d\n", stats.FilesScanned)
		fmt.Printf("[SUMMARY] Files changed: %d\n", stats.FilesChanged)
		fmt.Printf("[SUMMARY] Total reference changes: %d\n", stats.TotalChanges)
		if stats.WriteFailures > 0 {
			fmt.Printf("%s\n", ui.RenderFail(fmt.Sprintf("[SUMMARY] Write failures: %d", stats.WriteFailures)))
		}
		if applyDryRun {
			fmt.Printf("\n%s\n", ui.RenderWarn("[DRY RUN] This was a dry run. Re-run without --dry-run to apply changes."))
		}
	} else {
		report.FilesScanned = stats.FilesScanned
		report.FilesChanged = stats.FilesChanged
		report.TotalChanges = stats.TotalChanges
		report.WriteFailures = stats.WriteFailures
		outputJSON(report)
	}

	if stats.WriteFailures > 0 {
		os.Exit(1)
	}
}

// printFileChanges prints the per-file change block: header, one line per
// rewrite, and a before/after snippet unless the file has more changed
// lines than limit.
func printFileChanges(result *remap.FileResult, display string, limit int) {
	fmt.Printf("%s %s\n", ui.RenderAccent("[UPDATE]"), display)
	fmt.Printf("  Making %d change(s):\n", result.Total)
	showDiff := len(result.LineChanges) <= limit
	for _, lc := range result.LineChanges {
		for _, ch := range lc.Changes {
			fmt.Printf("    Line %d: #%d -> #%d\n", lc.Line, ch.Old, ch.New)
		}
		if showDiff {
			fmt.Printf("      %s\n", ui.DiffDel("- "+lc.OldText))
			fmt.Printf("      %s\n", ui.DiffAdd("+ "+lc.NewText))
		}
	}
}

func fileJSON(result *remap.FileResult, display string) applyFileJSON {
	f := applyFileJSON{Path: display, Changes: []applyChangeJSON{}}
	for _, lc := range result.LineChanges {
		for _, ch := range lc.Changes {
			f.Changes = append(f.Changes, applyChangeJSON{Line: lc.Line, Old: ch.Old, New: ch.New})
		}
	}
	return f
}

func printBanner(title string) {
	line := strings.Repeat("=", bannerWidth)
	fmt.Printf("%s\n%s\n%s\n", line, title, line)
}

// effectiveTarget resolves the scan root and extension list after flag and
// config merging, falling back to baseline defaults if config never
// initialized.
func effectiveTarget() (string, []string) {
	root := rootDir
	if root == "" {
		root = "."
	}
	extensions := extFlags
	if len(extensions) == 0 {
		extensions = []string{"swift"}
	}
	return root, extensions
}

// displayPath returns path relative to the working directory when the file
// is under it, else the path unchanged.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
