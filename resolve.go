package main

import "strings"

// ResolveAnnotations runs both extractors over one oracle response and
// merges the results: errors first, then suggestions, each in blob order,
// with a final pass removing exact (line, original, replacement)
// duplicates across kinds. When the merge comes up empty the static
// fallback scan runs instead, so a trivially-detectable defect is never
// silently reported as "no issues".
func ResolveAnnotations(errorsText, suggestionsText string, idx *LineIndex) []Annotation {
	pending := make(pendingChanges)

	errs := ExtractErrors(errorsText, idx, pending)
	sugs := ExtractSuggestions(suggestionsText, idx, pending)

	merged := make([]Annotation, 0, len(errs)+len(sugs))
	seen := make(map[string]bool)
	for _, a := range append(errs, sugs...) {
		if seen[a.Key()] {
			continue
		}
		seen[a.Key()] = true
		merged = append(merged, a)
	}

	if len(merged) == 0 {
		merged = FallbackScan(idx)
	}
	return merged
}

// FallbackScan inspects the buffer directly for a small fixed set of
// structural defects, bypassing the oracle text pipeline. Used only when
// extraction produced nothing.
func FallbackScan(idx *LineIndex) []Annotation {
	var out []Annotation
	for n, line := range idx.Lines() {
		lineNo := n + 1
		fixed, ok := closeOpenDelimiters(line)
		if !ok {
			continue
		}
		out = append(out, Annotation{
			Line:            lineNo,
			Kind:            KindError,
			Message:         "Unterminated call: missing closing delimiter",
			OriginalText:    strings.TrimSpace(line),
			ReplacementText: strings.TrimSpace(fixed),
			Severity:        severityFor(KindError),
		})
	}
	return out
}
