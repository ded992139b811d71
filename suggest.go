package main

import (
	"regexp"
	"strings"
)

var (
	arrowRe        = regexp.MustCompile(`^(.*?)\s*(?:->|→)\s*(.+)$`)
	sectionOnlyRe  = regexp.MustCompile(`(?i)^(suggestions?|improvements?|errors?|notes?)\s*:?\s*$`)
	quotedFragRe   = regexp.MustCompile("`([^`]+)`" + `|"([^"]+)"|'([^']+)'`)
	inlineFencedRe = regexp.MustCompile("(?s)```(?:[a-zA-Z0-9]+\\n)?(.*?)```")
)

// ExtractSuggestions parses a raw suggestions blob into suggestion-kind
// candidates. Each statement must resolve a target line; the rest are
// free-floating commentary and get dropped. Replacements chain through
// the pending accumulator so a second suggestion on a line is diffed
// against the already-edited text, not the stale buffer content.
func ExtractSuggestions(blob string, idx *LineIndex, pending pendingChanges) []Annotation {
	var out []Annotation
	seen := make(map[string]bool)

	for _, raw := range strings.Split(blob, "\n") {
		stmt := strings.TrimSpace(raw)
		if stmt == "" || isSentinel(stmt) || sectionOnlyRe.MatchString(stmt) {
			continue
		}
		stmt = strings.TrimLeft(stmt, "-*• \t")

		lineNo, message, ok := resolveSuggestionLine(stmt)
		if !ok || !idx.Has(lineNo) {
			continue
		}
		if message == "" || isSentinel(message) {
			continue
		}

		bufLine, _ := idx.Line(lineNo)
		original := strings.TrimSpace(bufLine)
		if prev, chained := pending.latest(lineNo); chained {
			original = prev
		}

		replacement := suggestionReplacement(message)
		if replacement == "" {
			continue
		}

		if !isMeaningfulChange(original, replacement) {
			continue
		}
		cand := Annotation{
			Line:            lineNo,
			Kind:            KindSuggestion,
			Message:         message,
			OriginalText:    original,
			ReplacementText: replacement,
			Severity:        severityFor(KindSuggestion),
		}
		if seen[cand.Key()] {
			continue
		}
		if pending.duplicatesEdit(lineNo, original, replacement) {
			continue
		}

		seen[cand.Key()] = true
		pending.add(lineNo, replacement)
		out = append(out, cand)
	}
	return out
}

// resolveSuggestionLine pulls the target line number off a suggestion
// statement, handling both "line N[-M]: ..." and bare "N: ..." prefixes
func resolveSuggestionLine(stmt string) (int, string, bool) {
	if m := lineRefRe.FindStringSubmatch(stmt); m != nil {
		n := parseIntSafe(m[1], 0)
		if n < 1 {
			return 0, "", false
		}
		return n, strings.TrimSpace(stmt[len(m[0]):]), true
	}
	if m := barePrefixRe.FindStringSubmatch(stmt); m != nil {
		n := parseIntSafe(m[1], 0)
		if n < 1 {
			return 0, "", false
		}
		return n, strings.TrimSpace(stmt[len(m[0]):]), true
	}
	return 0, "", false
}

// suggestionReplacement derives the proposed text from a suggestion
// message: the right-hand side of an arrow if present, else a quoted or
// fenced fragment, else the whole message
func suggestionReplacement(message string) string {
	if m := arrowRe.FindStringSubmatch(message); m != nil {
		return cleanReplacement(m[2])
	}
	if m := inlineFencedRe.FindStringSubmatch(message); m != nil {
		return cleanReplacement(m[1])
	}
	if m := quotedFragRe.FindStringSubmatch(message); m != nil {
		for _, g := range m[1:] {
			if g != "" {
				return cleanReplacement(g)
			}
		}
	}
	return cleanReplacement(message)
}

// cleanReplacement strips residual line prefixes, wrapping quotes, and
// backticks from a candidate replacement
func cleanReplacement(s string) string {
	s = strings.TrimSpace(s)
	if m := lineRefRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(s[len(m[0]):])
	}
	s = strings.Trim(s, "`")
	// Unwrap only fully-enclosing quotes that aren't part of the code
	for _, q := range []string{"\"", "'"} {
		if strings.HasPrefix(s, q) && strings.HasSuffix(s, q) && len(s) > 1 &&
			strings.Count(s, q) == 2 {
			inner := s[1 : len(s)-1]
			if !strings.Contains(inner, q) {
				s = inner
			}
		}
	}
	return strings.TrimSpace(s)
}
