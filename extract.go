package main

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	lineRefRe    = regexp.MustCompile(`(?i)^[\s\-\*]*line\s+(\d+)(?:\s*-\s*(\d+))?\s*[:\-]?\s*`)
	barePrefixRe = regexp.MustCompile(`^\s*(\d+)\s*:\s*`)
)

// pendingChanges accumulates replacements already queued per line during a
// single extraction pass. Passed explicitly through the extractors so they
// stay pure functions of (blob, buffer).
type pendingChanges map[int][]string

func (p pendingChanges) add(line int, replacement string) {
	p[line] = append(p[line], replacement)
}

// latest returns the most recently queued replacement for a line, so a
// later suggestion chains against the already-edited text instead of the
// stale original.
func (p pendingChanges) latest(line int) (string, bool) {
	reps := p[line]
	if len(reps) == 0 {
		return "", false
	}
	return reps[len(reps)-1], true
}

// duplicatesEdit reports whether a proposed replacement repeats an edit
// already queued for the line. Exact repeats always count; so do two
// edits that each append the same piece of mandatory punctuation to the
// same original, even when their literal text differs.
func (p pendingChanges) duplicatesEdit(line int, original, replacement string) bool {
	suffix := addedSuffix(original, replacement)
	for _, queued := range p[line] {
		if strings.TrimSpace(queued) == strings.TrimSpace(replacement) {
			return true
		}
		if suffix != "" && isPunctuationOnly(suffix) && addedSuffix(original, queued) == suffix {
			return true
		}
	}
	return false
}

// fixRule is one entry in the mechanical-fix classifier: a matcher over
// the error message and a synthesizer that derives a repaired line from
// the buffer content. A synthesizer returning ok=false means the rule
// matched but no safe fix exists (the annotation becomes informational).
// Rules are tried in order; the first matching rule wins.
type fixRule struct {
	name       string
	matches    func(message string) bool
	synthesize func(line string, pending pendingChanges, lineNo int) (string, bool)
}

var fixRules = []fixRule{
	{
		name: "unterminated-delimiter",
		matches: messageContainsAny(
			"unterminated", "never closed", "eol while scanning",
			"missing quote", "missing parenthes", "unexpected eof",
			"unexpected end of input",
		),
		synthesize: func(line string, _ pendingChanges, _ int) (string, bool) {
			return closeOpenDelimiters(line)
		},
	},
	{
		name: "undefined-name",
		matches: messageContainsAny(
			"not defined", "nameerror", "undefined", "undeclared",
			"cannot find name", "unresolved reference",
		),
		synthesize: func(string, pendingChanges, int) (string, bool) {
			// No safe mechanical fix for a missing declaration
			return "", false
		},
	},
	{
		name: "missing-block-delimiter",
		matches: messageContainsAny(
			"invalid syntax", "syntaxerror", "expected ':'",
			"expected an indented block", "missing colon",
		),
		synthesize: func(line string, pending pendingChanges, lineNo int) (string, bool) {
			fixed, ok := appendBlockColon(line)
			if !ok {
				return "", false
			}
			if pending.duplicatesEdit(lineNo, strings.TrimSpace(line), strings.TrimSpace(fixed)) {
				return "", false
			}
			return fixed, true
		},
	},
}

func messageContainsAny(needles ...string) func(string) bool {
	return func(message string) bool {
		m := strings.ToLower(message)
		for _, n := range needles {
			if strings.Contains(m, n) {
				return true
			}
		}
		return false
	}
}

// blockHeaderKeywords are control constructs that require a trailing colon
var blockHeaderKeywords = []string{
	"if", "elif", "else", "for", "while", "def", "class",
	"try", "except", "finally", "with",
}

// appendBlockColon adds the trailing colon to a control-construct header
// that lacks one, preserving indentation
func appendBlockColon(line string) (string, bool) {
	trimmed := strings.TrimRight(line, " \t")
	body := strings.TrimSpace(trimmed)
	if body == "" || strings.HasSuffix(body, ":") {
		return "", false
	}
	first := body
	if i := strings.IndexAny(body, " \t(:"); i > 0 {
		first = body[:i]
	}
	for _, kw := range blockHeaderKeywords {
		if first == kw {
			return trimmed + ":", true
		}
	}
	return "", false
}

// printLikeRe matches calls to common output constructs whose unclosed
// quotes/parens the fallback repair knows how to terminate
var printLikeRe = regexp.MustCompile(`(?i)\b(print|println|console\.log|puts|echo|printf)\s*\(`)

// closeOpenDelimiters repairs a line holding a print-like call with an
// unclosed quote or parenthesis by appending the missing terminators
func closeOpenDelimiters(line string) (string, bool) {
	if !printLikeRe.MatchString(line) {
		return "", false
	}
	fixed := strings.TrimRight(line, " \t")
	changed := false

	for _, q := range []byte{'"', '\''} {
		if strings.Count(fixed, string(q))%2 == 1 {
			fixed += string(q)
			changed = true
		}
	}
	if open := strings.Count(fixed, "(") - strings.Count(fixed, ")"); open > 0 {
		fixed += strings.Repeat(")", open)
		changed = true
	}
	if !changed {
		return "", false
	}
	return fixed, true
}

// ExtractErrors parses a raw errors blob into error-kind candidate
// annotations anchored to buffer lines. Statements naming a line get that
// anchor; the rest fall back to their position in the blob. The pending
// accumulator carries queued fixes forward so two statements about the
// same line cannot both add the same delimiter.
func ExtractErrors(blob string, idx *LineIndex, pending pendingChanges) []Annotation {
	var out []Annotation

	position := 0
	for _, raw := range strings.Split(blob, "\n") {
		stmt := strings.TrimSpace(raw)
		if stmt == "" {
			continue
		}
		position++
		if isSentinel(stmt) {
			continue
		}

		lineNo := position
		message := stmt
		if m := lineRefRe.FindStringSubmatch(stmt); m != nil {
			lineNo = parseIntSafe(m[1], position)
			message = strings.TrimSpace(stmt[len(m[0]):])
		}
		if message == "" || isSentinel(message) {
			continue
		}
		if !idx.Has(lineNo) {
			continue
		}

		bufLine, _ := idx.Line(lineNo)
		original := strings.TrimSpace(bufLine)

		replacement := original
		for _, rule := range fixRules {
			if !rule.matches(message) {
				continue
			}
			if fixed, ok := rule.synthesize(bufLine, pending, lineNo); ok {
				replacement = strings.TrimSpace(fixed)
			}
			break
		}

		if original == "" && replacement == original {
			continue
		}
		if replacement != original {
			pending.add(lineNo, replacement)
		}

		out = append(out, Annotation{
			Line:            lineNo,
			Kind:            KindError,
			Message:         message,
			OriginalText:    original,
			ReplacementText: replacement,
			Severity:        severityFor(KindError),
		})
	}
	return out
}

// parseIntSafe converts s to an int, returning fallback on any failure
func parseIntSafe(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
