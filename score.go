package main

import (
	"fmt"
	"strings"
)

// Score holds the per-dimension quality scores for a submission.
// Values are percentages in [0, 100].
type Score struct {
	Correctness   int
	Clarity       int
	BestPractices int
	Performance   int
	Overall       int
}

// DefaultScore is used when the model returns no usable score line.
func DefaultScore() Score {
	return Score{Correctness: 100, Clarity: 100, BestPractices: 100, Performance: 100, Overall: 100}
}

// ParseScore extracts a pipe-separated score from a SCORE section.
// The expected format is "correctness|clarity|best_practices|performance|overall",
// e.g. "85|90|75|80|82". The first line whose pipe-separated parts are
// all digits, with at least five parts, wins. Anything else yields the
// defaults; scoring never fails the analysis.
func ParseScore(section string) Score {
	if isSentinel(section) {
		return DefaultScore()
	}

	for _, line := range strings.Split(section, "\n") {
		parts := strings.Split(strings.TrimSpace(line), "|")
		if len(parts) < 5 {
			continue
		}
		values := make([]int, 0, 5)
		valid := true
		for _, part := range parts[:5] {
			n, ok := parseAllDigits(strings.TrimSpace(part))
			if !ok {
				valid = false
				break
			}
			values = append(values, clampScore(n))
		}
		if !valid {
			continue
		}
		return Score{
			Correctness:   values[0],
			Clarity:       values[1],
			BestPractices: values[2],
			Performance:   values[3],
			Overall:       values[4],
		}
	}
	return DefaultScore()
}

// parseAllDigits parses a non-empty string of ASCII digits. Signs,
// spaces, and decimals are rejected.
func parseAllDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
		if n > 1000 {
			return 0, false
		}
	}
	return n, true
}

func clampScore(n int) int {
	if n > 100 {
		return 100
	}
	return n
}

// FormatScore renders a score block for terminal display.
func FormatScore(s Score, theme *Theme) string {
	var b strings.Builder
	b.WriteString(theme.Accent("Code Score") + "\n")
	rows := []struct {
		label string
		value int
	}{
		{"Correctness", s.Correctness},
		{"Clarity", s.Clarity},
		{"Best practices", s.BestPractices},
		{"Performance", s.Performance},
		{"Overall", s.Overall},
	}
	for _, row := range rows {
		paint := theme.Success
		switch {
		case row.value < 50:
			paint = theme.Error
		case row.value < 80:
			paint = theme.Warning
		}
		b.WriteString(fmt.Sprintf("  %-15s %s\n", row.label, paint(fmt.Sprintf("%3d%%", row.value))))
	}
	return b.String()
}
