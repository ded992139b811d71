package main

import "strings"

// AnalysisSections holds the raw text of each section of an analysis
// response. Sections the model omitted are filled with a sentinel so
// downstream parsing treats them as empty.
type AnalysisSections struct {
	Errors      string
	Suggestions string
	TestCases   string
	Explanation string
	Score       string
}

const emptySection = "No information provided."

// sectionHeaders maps the uppercase header prefix of each section to a
// setter index. TEST CASES appears with both an underscore and a space
// depending on the model.
var sectionHeaders = []struct {
	prefix string
	assign func(*AnalysisSections, string)
}{
	{"ERRORS:", func(s *AnalysisSections, v string) { s.Errors = v }},
	{"SUGGESTIONS:", func(s *AnalysisSections, v string) { s.Suggestions = v }},
	{"TEST_CASES:", func(s *AnalysisSections, v string) { s.TestCases = v }},
	{"TEST CASES:", func(s *AnalysisSections, v string) { s.TestCases = v }},
	{"EXPLANATION:", func(s *AnalysisSections, v string) { s.Explanation = v }},
	{"SCORE:", func(s *AnalysisSections, v string) { s.Score = v }},
}

// SplitAnalysisSections splits a free-text analysis response into its
// labeled sections. A header only counts when the trimmed line starts
// with the uppercased label; everything up to the next header belongs
// to the current section. Text before the first header is ignored.
func SplitAnalysisSections(response string) AnalysisSections {
	sections := AnalysisSections{}

	var current func(*AnalysisSections, string)
	var buf []string

	flush := func() {
		if current == nil {
			return
		}
		current(&sections, strings.TrimSpace(strings.Join(buf, "\n")))
		buf = buf[:0]
	}

	for _, line := range strings.Split(response, "\n") {
		upper := strings.ToUpper(strings.TrimSpace(line))
		matched := false
		for _, h := range sectionHeaders {
			if strings.HasPrefix(upper, h.prefix) {
				flush()
				current = h.assign
				// Inline content after the header stays in the section.
				rest := strings.TrimSpace(line)[len(h.prefix):]
				if trimmed := strings.TrimSpace(rest); trimmed != "" {
					buf = append(buf, trimmed)
				}
				matched = true
				break
			}
		}
		if !matched && current != nil {
			buf = append(buf, line)
		}
	}
	flush()

	if sections.Errors == "" {
		sections.Errors = emptySection
	}
	if sections.Suggestions == "" {
		sections.Suggestions = emptySection
	}
	if sections.TestCases == "" {
		sections.TestCases = emptySection
	}
	if sections.Explanation == "" {
		sections.Explanation = emptySection
	}
	return sections
}
