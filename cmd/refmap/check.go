package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/refmap/internal/mapping"
	"github.com/steveyegge/refmap/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check <mapping-file>",
	Short: "Validate a mapping file and report hazards",
	Long: `Loads a mapping file without touching any source file and reports its
entry count, identity entries, and overlap hazards. An overlap is a new
number that is itself remapped by another pair, which makes re-running
apply rewrite those references a second time. Hazards are warnings; only
a mapping that fails to load exits non-zero.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			_ = cmd.Help()
			os.Exit(1)
		}
		runCheck(args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

type checkReportJSON struct {
	Path string `json:"path"`
	mapping.Stats
}

func runCheck(mappingPath string) {
	table, err := mapping.Load(mappingPath)
	if err != nil {
		if jsonOutput {
			outputJSONError(err, "mapping")
		}
		FatalError("%v", err)
	}

	stats := table.Stats()

	if jsonOutput {
		outputJSON(checkReportJSON{Path: mappingPath, Stats: stats})
		return
	}

	fmt.Printf("%s %s: %d mapping(s)\n", ui.RenderPass(ui.IconPass), mappingPath, stats.Entries)
	if stats.Identity > 0 {
		fmt.Printf("  %s\n", ui.RenderMuted(fmt.Sprintf("identity entries: %d (loaded, never rewritten)", stats.Identity)))
	}
	if len(stats.Overlaps) > 0 {
		fmt.Printf("  %s\n", ui.RenderWarn(fmt.Sprintf("%s %d new number(s) are also remapped old numbers: %s",
			ui.IconWarn, len(stats.Overlaps), formatIssueList(stats.Overlaps))))
		fmt.Printf("  %s\n", ui.RenderMuted("re-running apply after a successful run would rewrite these again"))
	}
}

// formatIssueList renders issue numbers as "#20, #31".
func formatIssueList(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = "#" + strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
