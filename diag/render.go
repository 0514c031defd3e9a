package diag

import (
	"fmt"
	"strings"
)

// Render produces a terminal-style, caret-labeled excerpt of source for d,
// the "visually labeled source excerpt" alternative rendering named in
// spec §4.A. It never reads past source's bounds: callers only get this far
// when invariant 1 (every emitted span is contained in the original source)
// already holds.
func (d Diagnostic) Render(source string) string {
	if d.Span.IsEmpty() {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}

	line, col, lineText := locate(source, d.Span.Start)
	width := int(d.Span.End - d.Span.Start)
	if width < 1 {
		width = 1
	}
	// Clamp the caret underline to the rendered line so a span that runs
	// onto a following line doesn't overrun the gutter.
	if col-1+width > len(lineText) {
		width = len(lineText) - (col - 1)
		if width < 1 {
			width = 1
		}
	}

	var b strings.Builder
	severity := "error"
	if d.Severity == SeverityWarning {
		severity = "warning"
	}
	if d.Code != "" {
		fmt.Fprintf(&b, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", severity, d.Message)
	}
	gutter := fmt.Sprintf("%d", line)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(&b, "%s--> line %d, column %d\n", pad+" ", line, col)
	fmt.Fprintf(&b, "%s |\n", pad)
	fmt.Fprintf(&b, "%s | %s\n", gutter, lineText)
	fmt.Fprintf(&b, "%s | %s%s", pad, strings.Repeat(" ", col-1), strings.Repeat("^", width))
	for _, h := range d.Help {
		fmt.Fprintf(&b, "\n%s = help: %s", pad, h)
	}
	return b.String()
}

// locate returns the 1-based line and column of byte offset off in source,
// along with the full text of that line (without its trailing newline).
func locate(source string, off uint32) (line, col int, lineText string) {
	line = 1
	lineStart := 0
	for i := 0; i < int(off) && i < len(source); i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := strings.IndexByte(source[lineStart:], '\n')
	if lineEnd == -1 {
		lineText = source[lineStart:]
	} else {
		lineText = source[lineStart : lineStart+lineEnd]
	}
	col = int(off) - lineStart + 1
	return line, col, lineText
}
