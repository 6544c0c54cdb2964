package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/refmap/internal/remap"
	"github.com/steveyegge/refmap/internal/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List files containing issue references",
	Long: `Walks the source tree and lists every file that contains at least one
#123-style issue reference, with a per-file reference count. Nothing is
modified; this is the read-only discovery half of apply.`,
	Run: func(cmd *cobra.Command, args []string) {
		runScan()
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

type scanReportJSON struct {
	Root           string            `json:"root"`
	Extensions     []string          `json:"extensions"`
	Candidates     int               `json:"candidates"`
	WithReferences int               `json:"with_references"`
	Skipped        int               `json:"skipped"`
	Files          []remap.ScanEntry `json:"files"`
}

func runScan() {
	root, extensions := effectiveTarget()

	files, err := remap.Discover(root, extensions)
	if err != nil {
		if jsonOutput {
			outputJSONError(err, "discover")
		}
		FatalError("%v", err)
	}
	entries, skipped := remap.ScanFiles(files)

	if jsonOutput {
		if entries == nil {
			entries = []remap.ScanEntry{}
		}
		outputJSON(scanReportJSON{
			Root:           root,
			Extensions:     extensions,
			Candidates:     len(files),
			WithReferences: len(entries),
			Skipped:        len(skipped),
			Files:          entries,
		})
		return
	}

	var b strings.Builder
	b.WriteString(ui.RenderCategory("issue references") + "\n")
	b.WriteString(ui.RenderMuted(fmt.Sprintf("root %s, extensions %s", root, strings.Join(extensions, ", "))) + "\n\n")
	for _, entry := range entries {
		b.WriteString(fmt.Sprintf("%6d  %s\n", entry.References, displayPath(entry.Path)))
	}
	b.WriteString(fmt.Sprintf("\n%d of %d candidate files contain issue references", len(entries), len(files)))
	if len(skipped) > 0 {
		b.WriteString(ui.RenderWarn(fmt.Sprintf(" (%d unreadable, skipped)", len(skipped))))
	}
	b.WriteString("\n")

	// Output with pager support
	if err := ui.ToPager(b.String(), ui.PagerOptions{NoPager: noPager}); err != nil {
		if _, writeErr := fmt.Fprint(os.Stdout, b.String()); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", writeErr)
		}
	}
}
