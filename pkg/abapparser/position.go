package abapparser

import "strings"

// LineAt returns the 1-based line number of offset within src.
func LineAt(src string, offset int) int {
	offset = min(max(offset, 0), len(src))
	return strings.Count(src[:offset], "\n") + 1
}

// LineSnippet returns the full lines covering src[start:end]: from just after
// the last newline before start to just before the first newline at or after
// end.
func LineSnippet(src string, start, end int) string {
	start = min(max(start, 0), len(src))
	end = min(max(end, start), len(src))

	lineStart := strings.LastIndexByte(src[:start], '\n') + 1
	lineEnd := len(src)
	if i := strings.IndexByte(src[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}
	return src[lineStart:lineEnd]
}

// EscapeNewlines replaces every newline with the two characters `\n` so the
// text prints as a single line.
func EscapeNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}
