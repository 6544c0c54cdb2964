// Package ui provides terminal styling and pager support for refmap CLI
// output. Colors follow the Ayu palette with adaptive light/dark variants;
// lipgloss drops the escape codes when stdout is not a terminal, so piped
// report bytes stay stable.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// accent is shared by plain accent text and category headers.
var accent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}

// Semantic styles shared by every command's report output.
var (
	PassStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"})
	WarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"})
	FailStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"})
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"})

	AccentStyle = lipgloss.NewStyle().Foreground(accent)

	// CategoryStyle marks section headers in listings.
	CategoryStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
)

// Status icons used in report and summary lines.
const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
)

// RenderPass styles applied-update markers green.
func RenderPass(s string) string {
	return PassStyle.Render(s)
}

// RenderWarn styles dry-run and hazard markers yellow.
func RenderWarn(s string) string {
	return WarnStyle.Render(s)
}

// RenderFail styles failure markers red.
func RenderFail(s string) string {
	return FailStyle.Render(s)
}

// RenderMuted styles secondary detail gray.
func RenderMuted(s string) string {
	return MutedStyle.Render(s)
}

// RenderAccent styles file markers blue.
func RenderAccent(s string) string {
	return AccentStyle.Render(s)
}

// RenderCategory renders a section header in uppercase.
func RenderCategory(s string) string {
	return CategoryStyle.Render(strings.ToUpper(s))
}

// DiffDel renders a removed-line snippet in a change report.
func DiffDel(s string) string {
	return FailStyle.Render(s)
}

// DiffAdd renders an added-line snippet in a change report.
func DiffAdd(s string) string {
	return PassStyle.Render(s)
}
