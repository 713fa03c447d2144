package diag

import (
	"strconv"
	"strings"

	gxfmt "github.com/statlang/statc/base/fmt"
)

// Render produces the user-visible rendering of d against source
// (spec.md §6: "two lines of source context around the error with a
// caret under the offending column, where the lexer has provided
// source files"). If d carries no span, or source is unavailable for
// the span's line, only the diagnostic's own message is returned.
func Render(source string, d *Diagnostic) string {
	var b strings.Builder
	b.WriteString(d.Error())
	b.WriteString("\n")
	if !d.Span.IsSet() {
		return b.String()
	}
	lines := strings.Split(source, "\n")
	line := d.Span.Begin.Line
	if line < 1 || line > len(lines) {
		return b.String()
	}
	start := line - 2
	if start < 0 {
		start = 0
	}
	snippet := strings.Join(lines[start:line], "\n") + "\n"
	b.WriteString(gxfmt.Number(snippet))
	col := d.Span.Begin.Col
	if col < 1 {
		col = 1
	}
	// gxfmt.Number prefixes each line with its number and a space.
	prefix := len(strconv.Itoa(line-start)) + 1
	b.WriteString(strings.Repeat(" ", prefix+col-1))
	b.WriteString("^\n")
	return b.String()
}
