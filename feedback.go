package main

import (
	"strconv"
	"strings"
)

// AnnotationKind classifies a piece of mentor feedback
type AnnotationKind string

const (
	KindError      AnnotationKind = "error"
	KindWarning    AnnotationKind = "warning"
	KindSuggestion AnnotationKind = "suggestion"
)

// Severity drives display priority only, never correctness logic
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
)

// Annotation is a single piece of positioned feedback attached to the
// buffer: an error or suggestion on one line, with an optional proposed
// replacement. When OriginalText is empty, accepting replaces the whole
// line. When ReplacementText equals OriginalText the annotation is
// informational only (no safe mechanical fix could be derived).
type Annotation struct {
	ID              string
	Line            int // 1-based
	Kind            AnnotationKind
	Message         string
	OriginalText    string
	ReplacementText string
	Severity        Severity
}

// Key is the dedup identity: no two stored annotations share it
func (a Annotation) Key() string {
	return strconv.Itoa(a.Line) + "\x00" + a.OriginalText + "\x00" + a.ReplacementText
}

// severityFor derives display severity from kind
func severityFor(kind AnnotationKind) Severity {
	if kind == KindError {
		return SeverityHigh
	}
	return SeverityMedium
}

// Sentinel values the mentor model emits when a section has no content.
// Messages that normalize to one of these are never stored.
var sentinelValues = []string{
	"none",
	"no information provided.",
	"[none]",
	"no errors",
	"no errors found.",
	"no suggestions",
	"n/a",
}

// isSentinel reports whether a message is a "no content" marker
func isSentinel(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range sentinelValues {
		if s == v {
			return true
		}
	}
	return false
}

// isMeaningfulChange reports whether replacement differs from original
// beyond whitespace or the capitalization of a bare string literal.
// Informational error annotations bypass this check (original == replacement
// is their "no auto-fix" signal).
func isMeaningfulChange(original, replacement string) bool {
	orig := strings.TrimSpace(original)
	repl := strings.TrimSpace(replacement)

	if repl == "" {
		return false
	}
	if orig == repl {
		return false
	}

	// Collapse interior whitespace; "x  =  1" vs "x = 1" is not a fix
	if collapseSpaces(orig) == collapseSpaces(repl) {
		return false
	}

	// A bare quoted literal differing only in case ("hello" vs "Hello")
	if isBareStringLiteral(orig) && isBareStringLiteral(repl) &&
		strings.EqualFold(orig, repl) {
		return false
	}

	return true
}

// isBareStringLiteral reports whether s is nothing but one quoted string
func isBareStringLiteral(s string) bool {
	if len(s) < 2 {
		return false
	}
	first := s[0]
	last := s[len(s)-1]
	if first != '"' && first != '\'' && first != '`' {
		return false
	}
	if last != first {
		return false
	}
	// No matching quote in the interior (would mean multiple tokens)
	return !strings.ContainsRune(s[1:len(s)-1], rune(first))
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// addedSuffix returns the text a replacement appends to its original,
// or "" if the replacement is not original-plus-suffix. Used to detect
// two suggestions that each independently add the same punctuation.
func addedSuffix(original, replacement string) string {
	orig := strings.TrimSpace(original)
	repl := strings.TrimSpace(replacement)
	if orig == "" || !strings.HasPrefix(repl, orig) {
		return ""
	}
	return strings.TrimSpace(repl[len(orig):])
}

// isPunctuationOnly reports whether s consists solely of punctuation
// characters (the class of "mandatory delimiter" fixes: colons, semicolons,
// braces, parens, quotes)
func isPunctuationOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch c {
		case ':', ';', ')', '(', '}', '{', ']', '[', '"', '\'', ',', '.':
		default:
			return false
		}
	}
	return true
}

// FormatAnnotations renders annotations for plain-terminal display
func FormatAnnotations(annotations []Annotation, theme *Theme) string {
	if len(annotations) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, a := range annotations {
		label := string(a.Kind)
		switch a.Kind {
		case KindError:
			label = theme.Error(label)
		case KindWarning:
			label = theme.Warning(label)
		default:
			label = theme.Info(label)
		}

		sb.WriteString(label)
		sb.WriteString(" line ")
		sb.WriteString(strconv.Itoa(a.Line))
		sb.WriteString(": ")
		sb.WriteString(a.Message)
		sb.WriteString("\n")

		if a.ReplacementText != "" && a.ReplacementText != a.OriginalText {
			if a.OriginalText != "" {
				sb.WriteString("  - ")
				sb.WriteString(a.OriginalText)
				sb.WriteString("\n")
			}
			sb.WriteString("  + ")
			sb.WriteString(a.ReplacementText)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
