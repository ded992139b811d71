package main

import "strings"

// LineIndex is an ordered view over a code buffer as 1-based lines.
// It is the foundation for all position-based annotation logic; the
// buffer itself is owned by the editor, this is just a snapshot of it.
type LineIndex struct {
	lines []string
}

// NewLineIndex splits a buffer into lines, normalizing CRLF endings
func NewLineIndex(buffer string) *LineIndex {
	buffer = strings.ReplaceAll(buffer, "\r\n", "\n")
	return &LineIndex{lines: strings.Split(buffer, "\n")}
}

// Count returns the number of lines in the buffer
func (ix *LineIndex) Count() int {
	return len(ix.lines)
}

// Has reports whether 1-based line n exists in the buffer
func (ix *LineIndex) Has(n int) bool {
	return n >= 1 && n <= len(ix.lines)
}

// Line returns the content of 1-based line n
func (ix *LineIndex) Line(n int) (string, bool) {
	if !ix.Has(n) {
		return "", false
	}
	return ix.lines[n-1], true
}

// Set replaces the content of 1-based line n; out-of-range is a no-op
func (ix *LineIndex) Set(n int, text string) {
	if ix.Has(n) {
		ix.lines[n-1] = text
	}
}

// Lines returns a copy of all lines in order
func (ix *LineIndex) Lines() []string {
	out := make([]string, len(ix.lines))
	copy(out, ix.lines)
	return out
}

// Text joins the lines back into a single buffer
func (ix *LineIndex) Text() string {
	return strings.Join(ix.lines, "\n")
}

// leadingWhitespace returns the run of spaces/tabs at the start of s
func leadingWhitespace(s string) string {
	for i, c := range s {
		if c != ' ' && c != '\t' {
			return s[:i]
		}
	}
	return s
}
