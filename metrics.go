package main

import (
	"fmt"
	"regexp"
	"strings"
)

// CodeMetrics holds static complexity and size measurements for a
// code buffer. Counts are computed without executing the code.
type CodeMetrics struct {
	TotalLines   int
	CodeLines    int
	CommentLines int
	BlankLines   int

	FunctionCount int
	ClassCount    int
	ImportCount   int

	CyclomaticComplexity int
	MaxNestingDepth      int

	CodePercentage    float64
	CommentPercentage float64
	AvgLineLength     float64
	LongestLine       int
	Characters        int
	CharactersNoSpace int
}

type languagePatterns struct {
	comment  *regexp.Regexp
	function *regexp.Regexp
	class    *regexp.Regexp
	imports  *regexp.Regexp
}

var metricPatterns = map[string]languagePatterns{
	"python": {
		comment:  regexp.MustCompile(`^\s*#`),
		function: regexp.MustCompile(`^\s*def\s+\w+`),
		class:    regexp.MustCompile(`^\s*class\s+\w+`),
		imports:  regexp.MustCompile(`^\s*(import|from)\s+`),
	},
	"javascript": {
		comment:  regexp.MustCompile(`^\s*(//|/\*|\*)`),
		function: regexp.MustCompile(`^\s*(function\s+\w+|\w+\s*[:=]\s*(async\s+)?(function|\([^)]*\)\s*=>))`),
		class:    regexp.MustCompile(`^\s*class\s+\w+`),
		imports:  regexp.MustCompile(`^\s*(import\s+|const\s+\w+\s*=\s*require)`),
	},
	"typescript": {
		comment:  regexp.MustCompile(`^\s*(//|/\*|\*)`),
		function: regexp.MustCompile(`^\s*(function\s+\w+|\w+\s*[:=]\s*(async\s+)?(function|\([^)]*\)\s*=>))`),
		class:    regexp.MustCompile(`^\s*(class|interface)\s+\w+`),
		imports:  regexp.MustCompile(`^\s*import\s+`),
	},
	"go": {
		comment:  regexp.MustCompile(`^\s*//`),
		function: regexp.MustCompile(`^\s*func\s+(\(\s*\w+\s+\*?\w+\s*\)\s*)?\w+`),
		class:    regexp.MustCompile(`^\s*type\s+\w+\s+struct`),
		imports:  regexp.MustCompile(`^\s*import\s|^\s*"[\w./-]+"$`),
	},
	"java": {
		comment:  regexp.MustCompile(`^\s*(//|/\*|\*)`),
		function: regexp.MustCompile(`^\s*(public|private|protected|static|\s)*[\w<>\[\]]+\s+\w+\s*\([^)]*\)\s*\{?`),
		class:    regexp.MustCompile(`^\s*(public\s+)?(class|interface|enum)\s+\w+`),
		imports:  regexp.MustCompile(`^\s*import\s+`),
	},
	"ruby": {
		comment:  regexp.MustCompile(`^\s*#`),
		function: regexp.MustCompile(`^\s*def\s+\w+`),
		class:    regexp.MustCompile(`^\s*(class|module)\s+\w+`),
		imports:  regexp.MustCompile(`^\s*require`),
	},
	"c": {
		comment:  regexp.MustCompile(`^\s*(//|/\*|\*)`),
		function: regexp.MustCompile(`^\s*[\w\*]+\s+\w+\s*\([^)]*\)\s*\{?`),
		class:    regexp.MustCompile(`^\s*(struct|union|enum)\s+\w+`),
		imports:  regexp.MustCompile(`^\s*#include`),
	},
	"cpp": {
		comment:  regexp.MustCompile(`^\s*(//|/\*|\*)`),
		function: regexp.MustCompile(`^\s*[\w:\*&<>]+\s+[\w:]+\s*\([^)]*\)\s*\{?`),
		class:    regexp.MustCompile(`^\s*(class|struct)\s+\w+`),
		imports:  regexp.MustCompile(`^\s*#include`),
	},
}

var complexityKeywords = map[string][]string{
	"python":     {"if ", "elif ", "for ", "while ", "except", " and ", " or "},
	"javascript": {"if ", "else if", "for ", "while ", "case ", "catch", "&&", "||", "?"},
	"typescript": {"if ", "else if", "for ", "while ", "case ", "catch", "&&", "||", "?"},
	"go":         {"if ", "for ", "case ", "&&", "||"},
	"java":       {"if ", "else if", "for ", "while ", "case ", "catch", "&&", "||"},
	"ruby":       {"if ", "elsif ", "unless ", "for ", "while ", "until ", "rescue", "&&", "||"},
	"c":          {"if ", "else if", "for ", "while ", "case ", "&&", "||"},
	"cpp":        {"if ", "else if", "for ", "while ", "case ", "catch", "&&", "||"},
}

// ComputeMetrics measures a code buffer. Unknown languages fall back
// to python-style counting.
func ComputeMetrics(code, language string) CodeMetrics {
	lang := NormalizeLanguage(language)
	patterns, ok := metricPatterns[lang]
	if !ok {
		patterns = metricPatterns["python"]
	}
	keywords, ok := complexityKeywords[lang]
	if !ok {
		keywords = complexityKeywords["python"]
	}

	m := CodeMetrics{CyclomaticComplexity: 1}
	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")
	m.TotalLines = len(lines)

	var totalLen int
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		totalLen += len(line)
		if len(line) > m.LongestLine {
			m.LongestLine = len(line)
		}

		switch {
		case trimmed == "":
			m.BlankLines++
			continue
		case patterns.comment.MatchString(line):
			m.CommentLines++
			continue
		default:
			m.CodeLines++
		}

		if patterns.function.MatchString(line) {
			m.FunctionCount++
		}
		if patterns.class.MatchString(line) {
			m.ClassCount++
		}
		if patterns.imports.MatchString(line) {
			m.ImportCount++
		}
		for _, kw := range keywords {
			m.CyclomaticComplexity += strings.Count(line, kw)
		}

		if depth := nestingDepth(line, lang); depth > m.MaxNestingDepth {
			m.MaxNestingDepth = depth
		}
	}

	if m.TotalLines > 0 {
		m.CodePercentage = round1(float64(m.CodeLines) / float64(m.TotalLines) * 100)
		m.CommentPercentage = round1(float64(m.CommentLines) / float64(m.TotalLines) * 100)
		m.AvgLineLength = round1(float64(totalLen) / float64(m.TotalLines))
	}
	m.Characters = len(code)
	m.CharactersNoSpace = len(strings.Join(strings.Fields(code), ""))
	return m
}

// nestingDepth estimates nesting from leading indentation, assuming
// one level per 4 spaces (or per tab).
func nestingDepth(line, lang string) int {
	indent := leadingWhitespace(line)
	if indent == "" {
		return 0
	}
	tabs := strings.Count(indent, "\t")
	spaces := len(indent) - tabs
	unit := 4
	if lang == "ruby" || lang == "javascript" || lang == "typescript" {
		unit = 2
	}
	return tabs + spaces/unit
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}

// FormatMetrics renders a metrics summary for terminal display.
func FormatMetrics(m CodeMetrics, theme *Theme) string {
	var b strings.Builder
	b.WriteString(theme.Accent("Code Metrics") + "\n")
	b.WriteString(fmt.Sprintf("  Lines:       %d total, %d code (%.1f%%), %d comments (%.1f%%), %d blank\n",
		m.TotalLines, m.CodeLines, m.CodePercentage, m.CommentLines, m.CommentPercentage, m.BlankLines))
	b.WriteString(fmt.Sprintf("  Structure:   %d functions, %d classes, %d imports\n",
		m.FunctionCount, m.ClassCount, m.ImportCount))
	b.WriteString(fmt.Sprintf("  Complexity:  %d cyclomatic, max nesting %d\n",
		m.CyclomaticComplexity, m.MaxNestingDepth))
	b.WriteString(fmt.Sprintf("  Size:        %d chars (%d non-space), avg line %.1f, longest %d\n",
		m.Characters, m.CharactersNoSpace, m.AvgLineLength, m.LongestLine))
	return b.String()
}
