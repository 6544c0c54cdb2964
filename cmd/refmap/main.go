// Command refmap rewrites #123-style issue references in source files after
// an issue-tracker migration renumbers the issues.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/steveyegge/refmap/internal/config"
	"github.com/steveyegge/refmap/internal/debug"
	"github.com/steveyegge/refmap/internal/telemetry"
)

// Persistent flag values shared across commands.
var (
	jsonOutput  bool
	verboseFlag bool
	quietFlag   bool
	rootDir     string
	extFlags    []string
	noPager     bool
)

func init() {
	// Initialize viper configuration
	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize config: %v\n", err)
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", "", "Directory to scan (default: configured root, else current directory)")
	rootCmd.PersistentFlags().StringSliceVar(&extFlags, "ext", nil, "File extensions to scan (default: configured extensions, else swift)")
	rootCmd.PersistentFlags().BoolVar(&noPager, "no-pager", false, "Disable pager for long listings")

	rootCmd.Flags().BoolP("version", "V", false, "Show version information")
}

var rootCmd = &cobra.Command{
	Use:   "refmap",
	Short: "refmap - Remap issue references in source files",
	Long: `refmap rewrites #123-style issue references across a source tree according
to an old->new issue-number mapping, as exported by an issue-tracker
migration. Identity entries are left alone and unmapped references are
preserved, so a remap run is safe to repeat.`,
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.Flags().GetBool("version"); showVersion {
			fmt.Printf("refmap version %s (%s)\n", Version, Build)
			return
		}
		_ = cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyVerbosityFlags()
		applyViperOverrides(cmd)
	},
}

// applyVerbosityFlags propagates --verbose and --quiet to the debug package
// so all subsequent output respects the user's preference.
func applyVerbosityFlags() {
	debug.SetVerbose(verboseFlag)
	debug.SetQuiet(quietFlag)
}

// applyViperOverrides merges viper config values (config file + env vars)
// into flags that weren't explicitly set on the command line.
// Priority: flags > env vars > config file > defaults.
func applyViperOverrides(cmd *cobra.Command) {
	if !cmd.Flags().Changed("json") {
		jsonOutput = config.GetBool("json")
	}
	if !cmd.Flags().Changed("no-pager") {
		noPager = config.GetBool("no-pager")
	}
	if !cmd.Flags().Changed("dir") {
		rootDir = config.GetString("root")
	}
	if !cmd.Flags().Changed("ext") {
		extFlags = config.GetStringSlice("extensions")
	}
	if debug.Enabled() {
		debug.Logf("refmap: effective root=%q extensions=%v json=%v\n", rootDir, extFlags, jsonOutput)
	}
}

func main() {
	ctx := context.Background()
	if err := telemetry.Init(ctx, "refmap", Version); err != nil {
		WarnError("telemetry disabled: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		telemetry.Shutdown(shutdownCtx)
	}()

	rootCmd.InitDefaultHelpCmd()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
