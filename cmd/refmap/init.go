package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/steveyegge/refmap/internal/config"
	"github.com/steveyegge/refmap/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter " + config.FileName + " config file",
	Long: `Writes a commented ` + config.FileName + ` into the current directory so scan
extensions and the scan root can be configured per project. Does nothing
if the file already exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		runInit()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit() {
	if _, err := os.Stat(config.FileName); err == nil {
		if jsonOutput {
			outputJSON(map[string]interface{}{"created": false, "path": config.FileName})
			return
		}
		fmt.Printf("%s already exists, leaving it alone\n", config.FileName)
		local := config.LoadLocalConfig(".")
		if len(local.Extensions) > 0 {
			fmt.Printf("  extensions: %s\n", strings.Join(local.Extensions, ", "))
		}
		if local.Root != "" {
			fmt.Printf("  root: %s\n", local.Root)
		}
		return
	}

	if err := createConfigYaml(config.FileName); err != nil {
		if jsonOutput {
			outputJSONError(err, "")
		}
		FatalError("%v", err)
	}

	if jsonOutput {
		outputJSON(map[string]interface{}{"created": true, "path": config.FileName})
		return
	}
	fmt.Printf("%s\n", ui.RenderPass(ui.IconPass+" Created "+config.FileName))
	fmt.Printf("Edit it to set scan extensions and root; flags and REFMAP_* env vars override it.\n")
}

func createConfigYaml(path string) error {
	configYamlTemplate := `# refmap Configuration File
# This file configures default behavior for all refmap commands run in this
# directory or any directory below it
# All settings can also be set via environment variables (REFMAP_* prefix)
# or overridden with command-line flags

# File extensions to scan (REFMAP_EXTENSIONS or --ext)
extensions:
  - swift

# Directory to scan, relative to where refmap runs (REFMAP_ROOT or --dir)
# root: "."

# Enable JSON output by default
# json: false

# Suppress the before/after snippet for files with more changed lines than this
# diff-limit: 10

# Never pipe long listings through a pager (REFMAP_NO_PAGER or --no-pager)
# no-pager: false
`

	if err := os.WriteFile(path, []byte(configYamlTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
