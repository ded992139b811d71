package main

import (
	"strings"
	"testing"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    Score
	}{
		{
			name:    "standard pipe format",
			section: "85|90|75|80|82",
			want:    Score{Correctness: 85, Clarity: 90, BestPractices: 75, Performance: 80, Overall: 82},
		},
		{
			name:    "spaces around parts",
			section: " 85 | 90 | 75 | 80 | 82 ",
			want:    Score{Correctness: 85, Clarity: 90, BestPractices: 75, Performance: 80, Overall: 82},
		},
		{
			name:    "score on later line",
			section: "Here is the breakdown:\n85|90|75|80|82",
			want:    Score{Correctness: 85, Clarity: 90, BestPractices: 75, Performance: 80, Overall: 82},
		},
		{
			name:    "values above 100 are clamped",
			section: "150|90|75|80|82",
			want:    Score{Correctness: 100, Clarity: 90, BestPractices: 75, Performance: 80, Overall: 82},
		},
		{
			name:    "extra parts ignored",
			section: "85|90|75|80|82|99",
			want:    Score{Correctness: 85, Clarity: 90, BestPractices: 75, Performance: 80, Overall: 82},
		},
		{
			name:    "too few parts yields defaults",
			section: "85|90|75",
			want:    DefaultScore(),
		},
		{
			name:    "non-numeric parts yield defaults",
			section: "85|high|75|80|82",
			want:    DefaultScore(),
		},
		{
			name:    "negative value rejected",
			section: "-5|90|75|80|82",
			want:    DefaultScore(),
		},
		{
			name:    "sentinel yields defaults",
			section: "No information provided.",
			want:    DefaultScore(),
		},
		{
			name:    "empty yields defaults",
			section: "",
			want:    DefaultScore(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseScore(tt.section)
			if got != tt.want {
				t.Errorf("ParseScore(%q) = %+v, want %+v", tt.section, got, tt.want)
			}
		})
	}
}

func TestFormatScore(t *testing.T) {
	theme := NewTheme(&ThemeSettings{Name: "default"})
	out := FormatScore(Score{Correctness: 45, Clarity: 70, BestPractices: 90, Performance: 100, Overall: 76}, theme)

	if !strings.Contains(out, "Code Score") {
		t.Error("output should carry the heading")
	}
	for _, label := range []string{"Correctness", "Clarity", "Best practices", "Performance", "Overall"} {
		if !strings.Contains(out, label) {
			t.Errorf("output missing %q", label)
		}
	}
	if !strings.Contains(out, "45%") || !strings.Contains(out, "100%") {
		t.Error("output should show percentage values")
	}
}
