package errors

import (
	"fmt"
	"strings"
)

// lineCol converts a byte offset into 1-indexed line and column numbers
// within source.
func lineCol(source string, offset int) (line, col int) {
	line, col = 1, 1
	for i, r := range source {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// sourceLine returns the text of the 1-indexed line containing offset.
func sourceLine(source string, offset int) string {
	lines := strings.Split(source, "\n")
	line, _ := lineCol(source, offset)
	if line-1 < 0 || line-1 >= len(lines) {
		return ""
	}
	return lines[line-1]
}

// Format renders err with source context in the style
// "filename:line:col: message" followed by the offending source line and a
// caret pointing at the failing column, the same layout the teacher's
// diagnostics formatter uses for compile errors.
func Format(filename, source string, offset int, err error) string {
	line, col := lineCol(source, offset)
	var b strings.Builder
	loc := fmt.Sprintf("%d:%d", line, col)
	if filename != "" {
		loc = filename + ":" + loc
	}
	fmt.Fprintf(&b, "%s: %v\n", loc, err)
	text := sourceLine(source, offset)
	if text != "" {
		b.WriteString("  " + text + "\n")
		b.WriteString("  " + strings.Repeat(" ", col-1) + "^\n")
	}
	return b.String()
}

// FormatAll renders a list of errors, separated by blank lines.
func FormatAll(filename, source string, offsets []int, errs []error) string {
	var b strings.Builder
	for i, err := range errs {
		offset := 0
		if i < len(offsets) {
			offset = offsets[i]
		}
		b.WriteString(Format(filename, source, offset, err))
		b.WriteString("\n")
	}
	return b.String()
}
