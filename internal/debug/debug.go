// Package debug provides leveled console output for refmap commands.
//
// Two independent gates decide what reaches the user: debug diagnostics
// (Logf, Printf) appear when REFMAP_DEBUG is set or --verbose was given,
// and informational lines (PrintNormal, PrintlnNormal) appear unless
// --quiet suppressed them. Mutation reports and summaries bypass this
// package entirely, so quiet runs still record what changed.
package debug

import (
	"fmt"
	"os"
)

var (
	enabled     = os.Getenv("REFMAP_DEBUG") != ""
	verboseMode = false
	quietMode   = false
)

// Enabled reports whether debug output is active, either through the
// REFMAP_DEBUG environment variable or SetVerbose.
func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose propagates the --verbose flag.
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// SetQuiet propagates the --quiet flag.
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// IsQuiet reports whether --quiet suppressed informational output.
func IsQuiet() bool {
	return quietMode
}

// Logf writes debug diagnostics to stderr when debug output is active.
func Logf(format string, args ...interface{}) {
	if Enabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Printf writes debug output to stdout when debug output is active.
func Printf(format string, args ...interface{}) {
	if Enabled() {
		fmt.Printf(format, args...)
	}
}

// PrintNormal writes informational output to stdout unless quiet mode is on.
func PrintNormal(format string, args ...interface{}) {
	if !quietMode {
		fmt.Printf(format, args...)
	}
}

// PrintlnNormal writes an informational line to stdout unless quiet mode is on.
func PrintlnNormal(args ...interface{}) {
	if !quietMode {
		fmt.Println(args...)
	}
}
