package main

import "testing"

func TestSplitAnalysisSections(t *testing.T) {
	t.Run("full response", func(t *testing.T) {
		response := `ERRORS:
Line 2: missing colon

SUGGESTIONS:
Line 1: use snake_case

TEST_CASES:
1. Input: 5 Expected: 25

EXPLANATION:
Squares a number.

SCORE:
85|90|75|80|82`

		s := SplitAnalysisSections(response)
		if s.Errors != "Line 2: missing colon" {
			t.Errorf("Errors = %q", s.Errors)
		}
		if s.Suggestions != "Line 1: use snake_case" {
			t.Errorf("Suggestions = %q", s.Suggestions)
		}
		if s.TestCases != "1. Input: 5 Expected: 25" {
			t.Errorf("TestCases = %q", s.TestCases)
		}
		if s.Explanation != "Squares a number." {
			t.Errorf("Explanation = %q", s.Explanation)
		}
		if s.Score != "85|90|75|80|82" {
			t.Errorf("Score = %q", s.Score)
		}
	})

	t.Run("missing sections get sentinel", func(t *testing.T) {
		s := SplitAnalysisSections("ERRORS:\nLine 1: bad")
		if s.Errors != "Line 1: bad" {
			t.Errorf("Errors = %q", s.Errors)
		}
		if s.Suggestions != emptySection {
			t.Errorf("Suggestions = %q, want sentinel", s.Suggestions)
		}
		if s.TestCases != emptySection {
			t.Errorf("TestCases = %q, want sentinel", s.TestCases)
		}
		if s.Explanation != emptySection {
			t.Errorf("Explanation = %q, want sentinel", s.Explanation)
		}
		if s.Score != "" {
			t.Errorf("Score = %q, want empty", s.Score)
		}
	})

	t.Run("test cases with space variant", func(t *testing.T) {
		s := SplitAnalysisSections("TEST CASES:\ntry zero")
		if s.TestCases != "try zero" {
			t.Errorf("TestCases = %q", s.TestCases)
		}
	})

	t.Run("lowercase headers match", func(t *testing.T) {
		s := SplitAnalysisSections("errors:\nLine 1: oops")
		if s.Errors != "Line 1: oops" {
			t.Errorf("Errors = %q", s.Errors)
		}
	})

	t.Run("inline content after header", func(t *testing.T) {
		s := SplitAnalysisSections("SCORE: 90|90|90|90|90")
		if s.Score != "90|90|90|90|90" {
			t.Errorf("Score = %q", s.Score)
		}
	})

	t.Run("text before first header ignored", func(t *testing.T) {
		s := SplitAnalysisSections("Here is my review.\n\nERRORS:\nNone")
		if s.Errors != "None" {
			t.Errorf("Errors = %q", s.Errors)
		}
	})

	t.Run("multi-line section bodies", func(t *testing.T) {
		s := SplitAnalysisSections("SUGGESTIONS:\nfirst\nsecond\n\nEXPLANATION:\ndone")
		if s.Suggestions != "first\nsecond" {
			t.Errorf("Suggestions = %q", s.Suggestions)
		}
		if s.Explanation != "done" {
			t.Errorf("Explanation = %q", s.Explanation)
		}
	})

	t.Run("empty response", func(t *testing.T) {
		s := SplitAnalysisSections("")
		if s.Errors != emptySection || s.Suggestions != emptySection {
			t.Error("empty response should yield sentinels")
		}
	})
}
