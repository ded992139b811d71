package main

import (
	"fmt"
	"regexp"
	"strings"
)

// SuggestedTest is a single test case proposed by the analysis.
type SuggestedTest struct {
	Number      int
	Input       string
	Expected    string
	Description string
}

var (
	// "1. Test with empty input" / "- Test with empty input"
	numberedTestRe = regexp.MustCompile(`^\s*(?:(\d+)[\.\)]|[-*•])\s+(.+)$`)
	// "Input: [] Expected: 0" on one line
	inputExpectedRe = regexp.MustCompile(`(?i)^\s*Input:\s*(.+?)\s+(?:Expected|Output):\s*(.+?)\s*$`)
)

// ParseSuggestedTests extracts suggested test cases from a TEST_CASES
// section. It accepts numbered or bulleted descriptions, optionally
// followed by Input/Expected lines belonging to the same case. A
// sentinel section yields no tests.
func ParseSuggestedTests(section string) []SuggestedTest {
	if isSentinel(section) {
		return nil
	}

	var tests []SuggestedTest

	for _, raw := range strings.Split(section, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := inputExpectedRe.FindStringSubmatch(line); m != nil {
			if n := len(tests); n > 0 && tests[n-1].Input == "" {
				tests[n-1].Input = strings.TrimSpace(m[1])
				tests[n-1].Expected = strings.TrimSpace(m[2])
			} else {
				tests = append(tests, SuggestedTest{
					Number:   len(tests) + 1,
					Input:    strings.TrimSpace(m[1]),
					Expected: strings.TrimSpace(m[2]),
				})
			}
			continue
		}

		if m := numberedTestRe.FindStringSubmatch(line); m != nil {
			desc := strings.TrimSpace(m[2])
			if isSentinel(desc) {
				continue
			}
			tests = append(tests, SuggestedTest{
				Number:      len(tests) + 1,
				Description: desc,
			})
			continue
		}

		// Unlabeled continuation extends the previous description.
		if n := len(tests); n > 0 {
			tests[n-1].Description = strings.TrimSpace(tests[n-1].Description + " " + line)
		}
	}

	return tests
}

// FormatSuggestedTests renders test cases for terminal display.
func FormatSuggestedTests(tests []SuggestedTest, theme *Theme) string {
	if len(tests) == 0 {
		return theme.Dim("No test cases suggested.")
	}
	var b strings.Builder
	b.WriteString(theme.Accent("Suggested Tests") + "\n")
	for _, tc := range tests {
		if tc.Description != "" {
			b.WriteString(fmt.Sprintf("  %d. %s\n", tc.Number, tc.Description))
		}
		if tc.Input != "" {
			b.WriteString(fmt.Sprintf("     Input: %s\n", tc.Input))
		}
		if tc.Expected != "" {
			b.WriteString(fmt.Sprintf("     Expected: %s\n", tc.Expected))
		}
	}
	return b.String()
}
