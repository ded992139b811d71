package main

import (
	"reflect"
	"testing"
)

func TestResolveOrdersErrorsBeforeSuggestions(t *testing.T) {
	idx := NewLineIndex("if x > 0\nprint(y)")
	errors := "line 2: NameError: name 'y' is not defined"
	suggestions := "line 1: if x > 0 -> if x > 0:"

	anns := ResolveAnnotations(errors, suggestions, idx)
	if len(anns) != 2 {
		t.Fatalf("got %d annotations, want 2", len(anns))
	}
	if anns[0].Kind != KindError || anns[1].Kind != KindSuggestion {
		t.Errorf("order = %q, %q; want error then suggestion", anns[0].Kind, anns[1].Kind)
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	idx := NewLineIndex("print(\"hi\")\nif x > 0\n    print(x)")
	errors := "line 2: SyntaxError: invalid syntax"
	suggestions := "line 1: print(\"hi\") -> print(\"hello\")\nline 3: print(x) -> print(x * 2)"

	first := ResolveAnnotations(errors, suggestions, idx)
	second := ResolveAnnotations(errors, suggestions, idx)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolver is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestResolveDedupsAcrossKinds(t *testing.T) {
	// Error and suggestion pipelines propose the identical fix
	idx := NewLineIndex("if x > 0")
	errors := "line 1: SyntaxError: invalid syntax"
	suggestions := "line 1: if x > 0 -> if x > 0:"

	anns := ResolveAnnotations(errors, suggestions, idx)
	keys := make(map[string]int)
	for _, a := range anns {
		keys[a.Key()]++
	}
	for k, n := range keys {
		if n > 1 {
			t.Errorf("key %q stored %d times", k, n)
		}
	}
}

func TestResolveNoSentinelLeakage(t *testing.T) {
	idx := NewLineIndex("x = 1")
	blobs := []string{"None", "[None]", "no information provided.", "NONE", ""}

	for _, e := range blobs {
		for _, s := range blobs {
			for _, a := range ResolveAnnotations(e, s, idx) {
				if isSentinel(a.Message) {
					t.Errorf("sentinel message leaked into store: %q", a.Message)
				}
			}
		}
	}
}

func TestFallbackScanOnlyOnEmptyMerge(t *testing.T) {
	// Buffer has a defect the fallback would flag, but the oracle already
	// reported something usable, so the fallback must stay off
	idx := NewLineIndex("print(\"hi")
	anns := ResolveAnnotations("line 1: SyntaxError: unterminated string literal", "None", idx)

	if len(anns) != 1 {
		t.Fatalf("got %d annotations, want 1", len(anns))
	}
	if anns[0].Message == "Unterminated call: missing closing delimiter" {
		t.Error("fallback scan ran despite a non-empty extraction result")
	}
}

func TestFallbackScanFiresOnEmptyFeedback(t *testing.T) {
	idx := NewLineIndex("x = 1\nprint(\"hi")
	anns := ResolveAnnotations("None", "[None]", idx)

	if len(anns) != 1 {
		t.Fatalf("got %d annotations, want 1", len(anns))
	}
	a := anns[0]
	if a.Line != 2 || a.Kind != KindError {
		t.Errorf("annotation = %+v", a)
	}
	if a.ReplacementText != "print(\"hi\")" {
		t.Errorf("ReplacementText = %q", a.ReplacementText)
	}
}

func TestFallbackScanCleanBuffer(t *testing.T) {
	idx := NewLineIndex("x = 1\nprint(x)")
	if anns := ResolveAnnotations("None", "None", idx); len(anns) != 0 {
		t.Errorf("got %d annotations on a clean buffer, want 0", len(anns))
	}
}
