package main

import (
	"strings"
	"testing"
)

func TestComputeMetricsPython(t *testing.T) {
	code := `# squares a list
import math

class Squarer:
    def square_all(self, items):
        result = []
        for item in items:
            if item > 0:
                result.append(item * item)
        return result`

	m := ComputeMetrics(code, "python")

	if m.TotalLines != 10 {
		t.Errorf("TotalLines = %d, want 10", m.TotalLines)
	}
	if m.CommentLines != 1 {
		t.Errorf("CommentLines = %d, want 1", m.CommentLines)
	}
	if m.BlankLines != 1 {
		t.Errorf("BlankLines = %d, want 1", m.BlankLines)
	}
	if m.CodeLines != 8 {
		t.Errorf("CodeLines = %d, want 8", m.CodeLines)
	}
	if m.FunctionCount != 1 {
		t.Errorf("FunctionCount = %d, want 1", m.FunctionCount)
	}
	if m.ClassCount != 1 {
		t.Errorf("ClassCount = %d, want 1", m.ClassCount)
	}
	if m.ImportCount != 1 {
		t.Errorf("ImportCount = %d, want 1", m.ImportCount)
	}
	// base 1 + "for " + "if "
	if m.CyclomaticComplexity != 3 {
		t.Errorf("CyclomaticComplexity = %d, want 3", m.CyclomaticComplexity)
	}
	// "result.append(...)" sits at 16 spaces = 4 levels
	if m.MaxNestingDepth != 4 {
		t.Errorf("MaxNestingDepth = %d, want 4", m.MaxNestingDepth)
	}
}

func TestComputeMetricsGo(t *testing.T) {
	code := `// doubler
package main

type Doubler struct {
	n int
}

func (d *Doubler) Double() int {
	if d.n > 0 {
		return d.n * 2
	}
	return 0
}`

	m := ComputeMetrics(code, "go")

	if m.CommentLines != 1 {
		t.Errorf("CommentLines = %d, want 1", m.CommentLines)
	}
	if m.FunctionCount != 1 {
		t.Errorf("FunctionCount = %d, want 1", m.FunctionCount)
	}
	if m.ClassCount != 1 {
		t.Errorf("ClassCount = %d, want 1", m.ClassCount)
	}
	// base 1 + "if "
	if m.CyclomaticComplexity != 2 {
		t.Errorf("CyclomaticComplexity = %d, want 2", m.CyclomaticComplexity)
	}
}

func TestComputeMetricsUnknownLanguageFallsBack(t *testing.T) {
	m := ComputeMetrics("# comment\nx = 1", "cobol")
	if m.CommentLines != 1 {
		t.Errorf("CommentLines = %d, want 1 (python-style fallback)", m.CommentLines)
	}
	if m.CodeLines != 1 {
		t.Errorf("CodeLines = %d, want 1", m.CodeLines)
	}
}

func TestComputeMetricsSize(t *testing.T) {
	m := ComputeMetrics("ab cd", "python")
	if m.Characters != 5 {
		t.Errorf("Characters = %d, want 5", m.Characters)
	}
	if m.CharactersNoSpace != 4 {
		t.Errorf("CharactersNoSpace = %d, want 4", m.CharactersNoSpace)
	}
	if m.LongestLine != 5 {
		t.Errorf("LongestLine = %d, want 5", m.LongestLine)
	}
	if m.AvgLineLength != 5.0 {
		t.Errorf("AvgLineLength = %v, want 5.0", m.AvgLineLength)
	}
}

func TestNestingDepth(t *testing.T) {
	tests := []struct {
		line string
		lang string
		want int
	}{
		{"x = 1", "python", 0},
		{"    x = 1", "python", 1},
		{"        x = 1", "python", 2},
		{"\tx = 1", "go", 1},
		{"\t\tx = 1", "go", 2},
		{"  x = 1", "javascript", 1},
		{"    x = 1", "javascript", 2},
	}

	for _, tt := range tests {
		if got := nestingDepth(tt.line, tt.lang); got != tt.want {
			t.Errorf("nestingDepth(%q, %s) = %d, want %d", tt.line, tt.lang, got, tt.want)
		}
	}
}

func TestFormatMetrics(t *testing.T) {
	theme := NewTheme(&ThemeSettings{Name: "default"})
	out := FormatMetrics(ComputeMetrics("# note\n\nx = 1", "python"), theme)

	for _, want := range []string{"Code Metrics", "Lines:", "Structure:", "Complexity:", "Size:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// Every line-class count renders with its value
	if !strings.Contains(out, "3 total") || !strings.Contains(out, "1 code") ||
		!strings.Contains(out, "1 comments") || !strings.Contains(out, "1 blank") {
		t.Errorf("line counts not rendered: %q", out)
	}
	if strings.Contains(out, "MISSING") {
		t.Errorf("format/argument mismatch in output: %q", out)
	}
}
