package remap

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/steveyegge/refmap/internal/mapping"
)

// refPattern matches an issue reference: '#' plus digits with a trailing word
// boundary, so "#123." and "#123" at end of line match but "#123abc" does not.
var refPattern = regexp.MustCompile(`#(\d+)\b`)

// HasReference reports whether data contains at least one issue reference.
// This is the cheap pre-filter applied before the line-by-line rewrite pass.
func HasReference(data []byte) bool {
	return refPattern.Match(data)
}

// CountReferences returns the number of issue references in data.
func CountReferences(data []byte) int {
	return len(refPattern.FindAll(data, -1))
}

// RewriteLine applies table to every reference in line. A reference is
// rewritten only when its number maps to a different number; unmapped and
// self-mapped references are left byte-identical. Matches on one line are
// independent: some may be rewritten while others are not.
func RewriteLine(line string, table mapping.Table) (string, []Change) {
	var changes []Change
	rewritten := refPattern.ReplaceAllStringFunc(line, func(match string) string {
		num, err := strconv.Atoi(match[1:])
		if err != nil {
			// A digit run too long for int can't be a mapped issue number.
			return match
		}
		mapped, ok := table[num]
		if !ok || mapped == num {
			return match
		}
		changes = append(changes, Change{Old: num, New: mapped})
		return "#" + strconv.Itoa(mapped)
	})
	return rewritten, changes
}

// RewriteContent applies table to content line by line. Line terminators are
// preserved exactly: lines keep their trailing "\n" (or "\r\n", or nothing
// for an unterminated final line) through the rewrite, so only matched digit
// runs ever differ between input and output.
func RewriteContent(content string, table mapping.Table) (string, []LineChange, int) {
	lines := splitLinesKeepEnds(content)

	var (
		b           strings.Builder
		lineChanges []LineChange
		total       int
	)
	b.Grow(len(content))

	for i, line := range lines {
		newLine, changes := RewriteLine(line, table)
		b.WriteString(newLine)
		if len(changes) == 0 {
			continue
		}
		lineChanges = append(lineChanges, LineChange{
			Line:    i + 1,
			Changes: changes,
			OldText: strings.TrimRightFunc(line, unicode.IsSpace),
			NewText: strings.TrimRightFunc(newLine, unicode.IsSpace),
		})
		total += len(changes)
	}

	return b.String(), lineChanges, total
}

// splitLinesKeepEnds splits content after every '\n', keeping the terminator
// attached to its line. Joining the result reproduces content byte-for-byte.
func splitLinesKeepEnds(content string) []string {
	if content == "" {
		return nil
	}

	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, content[start:i+1])
			start = i + 1
		}
	}
	if start < len(content) {
		lines = append(lines, content[start:])
	}
	return lines
}
