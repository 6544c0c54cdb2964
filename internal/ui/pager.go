package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// PagerOptions controls how ToPager decides between paging and direct output.
type PagerOptions struct {
	// NoPager forces direct output (--no-pager flag).
	NoPager bool
}

// shouldUsePager reports whether output may be piped through a pager. Paging
// requires an interactive stdout and neither the NoPager option nor the
// REFMAP_NO_PAGER environment variable set.
func shouldUsePager(opts PagerOptions) bool {
	if opts.NoPager || os.Getenv("REFMAP_NO_PAGER") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getPagerCommand resolves the pager program: REFMAP_PAGER wins over PAGER,
// with less as the fallback.
func getPagerCommand() string {
	if pager := os.Getenv("REFMAP_PAGER"); pager != "" {
		return pager
	}
	if pager := os.Getenv("PAGER"); pager != "" {
		return pager
	}
	return "less"
}

// getTerminalHeight returns stdout's height in lines, or 0 when stdout is
// not a terminal.
func getTerminalHeight() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	_, height, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return height
}

// contentHeight counts the lines in content.
func contentHeight(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// ToPager writes content through the configured pager when stdout is an
// interactive terminal and the content is taller than the screen; otherwise
// it prints directly. A non-nil error means the pager process itself failed
// and nothing may have been shown.
func ToPager(content string, opts PagerOptions) error {
	if !shouldUsePager(opts) {
		fmt.Print(content)
		return nil
	}

	if h := getTerminalHeight(); h > 0 && contentHeight(content) <= h-1 {
		fmt.Print(content)
		return nil
	}

	parts := strings.Fields(getPagerCommand())
	if len(parts) == 0 {
		fmt.Print(content)
		return nil
	}

	cmd := exec.Command(parts[0], parts[1:]...) // #nosec G204 - pager command comes from the user's environment
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// less needs -R for colors; -F and -X keep short output on screen.
	cmd.Env = os.Environ()
	if os.Getenv("LESS") == "" {
		cmd.Env = append(cmd.Env, "LESS=-RFX")
	}

	return cmd.Run()
}
