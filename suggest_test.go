package main

import "testing"

func TestExtractSuggestionsArrow(t *testing.T) {
	idx := NewLineIndex(`print("Hello world")`)
	blob := `line 1: print("Hello world") -> print("Hello, world!")`

	anns := ExtractSuggestions(blob, idx, make(pendingChanges))
	if len(anns) != 1 {
		t.Fatalf("got %d annotations, want 1", len(anns))
	}
	a := anns[0]
	if a.Kind != KindSuggestion {
		t.Errorf("Kind = %q, want suggestion", a.Kind)
	}
	if a.OriginalText != `print("Hello world")` {
		t.Errorf("OriginalText = %q", a.OriginalText)
	}
	if a.ReplacementText != `print("Hello, world!")` {
		t.Errorf("ReplacementText = %q", a.ReplacementText)
	}
}

func TestExtractSuggestionsOriginalComesFromBuffer(t *testing.T) {
	// The left-hand side of the arrow lies about the buffer content; the
	// buffer wins
	idx := NewLineIndex("x = compute()")
	blob := "line 1: something_else() -> compute_total()"

	anns := ExtractSuggestions(blob, idx, make(pendingChanges))
	if len(anns) != 1 {
		t.Fatalf("got %d annotations, want 1", len(anns))
	}
	if anns[0].OriginalText != "x = compute()" {
		t.Errorf("OriginalText = %q, want buffer content", anns[0].OriginalText)
	}
}

func TestExtractSuggestionsDuplicateColonCollapses(t *testing.T) {
	idx := NewLineIndex("if x > 0")
	blob := "line 1: if x > 0 -> if x > 0:\n" +
		"line 1: add the missing colon -> if x > 0:"

	anns := ExtractSuggestions(blob, idx, make(pendingChanges))
	if len(anns) != 1 {
		t.Fatalf("got %d annotations, want 1 (duplicate colon fix must collapse)", len(anns))
	}
}

func TestExtractSuggestionsChainAgainstPendingEdit(t *testing.T) {
	idx := NewLineIndex("for i in range(10)")
	blob := "line 1: for i in range(10) -> for i in range(10):\n" +
		"line 1: for i in range(10): -> for idx in range(10):"

	anns := ExtractSuggestions(blob, idx, make(pendingChanges))
	if len(anns) != 2 {
		t.Fatalf("got %d annotations, want 2", len(anns))
	}
	// The second suggestion must diff against the first one's output, not
	// the stale buffer line
	if anns[1].OriginalText != "for i in range(10):" {
		t.Errorf("chained OriginalText = %q", anns[1].OriginalText)
	}
	if anns[1].ReplacementText != "for idx in range(10):" {
		t.Errorf("chained ReplacementText = %q", anns[1].ReplacementText)
	}
}

func TestExtractSuggestionsDiscardsUnanchored(t *testing.T) {
	idx := NewLineIndex("x = 1\ny = 2")

	tests := []struct {
		name string
		blob string
		want int
	}{
		{"no line number", "consider renaming this variable", 0},
		{"section header", "Suggestions:", 0},
		{"sentinel", "no information provided.", 0},
		{"nonexistent line", "line 7: x -> y", 0},
		{"bare numeric prefix", "2: y = 2 -> y = 20", 1},
		{"bulleted with line ref", "- line 1: x = 1 -> x = 100", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anns := ExtractSuggestions(tt.blob, idx, make(pendingChanges))
			if len(anns) != tt.want {
				t.Errorf("got %d annotations, want %d", len(anns), tt.want)
			}
		})
	}
}

func TestExtractSuggestionsRejectsNonMeaningful(t *testing.T) {
	idx := NewLineIndex("x = 1")

	tests := []struct {
		name string
		blob string
	}{
		{"identical", "line 1: x = 1 -> x = 1"},
		{"whitespace only", "line 1: x = 1 -> x  =  1"},
		{"exact repeat", "line 1: x = 1 -> x = 2\nline 1: x = 2 -> x = 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anns := ExtractSuggestions(tt.blob, idx, make(pendingChanges))
			if len(anns) > 1 {
				t.Errorf("got %d annotations, want at most 1", len(anns))
			}
			for _, a := range anns {
				if a.OriginalText == a.ReplacementText {
					t.Errorf("stored non-meaningful suggestion %+v", a)
				}
			}
		})
	}
}

func TestSuggestionReplacementFallbacks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"arrow", "a -> b", "b"},
		{"quoted fragment", `use "total_sum" instead`, "total_sum"},
		{"backtick fragment", "use `total_sum` instead", "total_sum"},
		{"fenced block", "replace with ```x = compute()```", "x = compute()"},
		{"whole message", "x = compute()", "x = compute()"},
		{"arrow rhs with residual prefix", "a -> line 3: fixed()", "fixed()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := suggestionReplacement(tt.in); got != tt.want {
				t.Errorf("suggestionReplacement(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
