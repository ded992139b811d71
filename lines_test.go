package main

import "testing"

func TestLineIndexBasics(t *testing.T) {
	idx := NewLineIndex("a\nb\nc")

	if idx.Count() != 3 {
		t.Errorf("Count() = %d, want 3", idx.Count())
	}
	if !idx.Has(1) || !idx.Has(3) {
		t.Error("expected lines 1 and 3 to exist")
	}
	if idx.Has(0) || idx.Has(4) {
		t.Error("expected lines 0 and 4 to be out of range")
	}

	line, ok := idx.Line(2)
	if !ok || line != "b" {
		t.Errorf("Line(2) = %q, %v, want \"b\", true", line, ok)
	}
	if _, ok := idx.Line(99); ok {
		t.Error("Line(99) should report missing")
	}
}

func TestLineIndexSetAndText(t *testing.T) {
	idx := NewLineIndex("x = 1\ny = 2")
	idx.Set(2, "y = 3")

	if got := idx.Text(); got != "x = 1\ny = 3" {
		t.Errorf("Text() = %q", got)
	}

	// Out-of-range writes are ignored
	idx.Set(0, "nope")
	idx.Set(10, "nope")
	if got := idx.Text(); got != "x = 1\ny = 3" {
		t.Errorf("Text() after bad Set = %q", got)
	}
}

func TestLineIndexNormalizesCRLF(t *testing.T) {
	idx := NewLineIndex("a\r\nb\r\nc")
	if idx.Count() != 3 {
		t.Errorf("Count() = %d, want 3", idx.Count())
	}
	if line, _ := idx.Line(2); line != "b" {
		t.Errorf("Line(2) = %q, want \"b\"", line)
	}
}

func TestLeadingWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"    print(x)", "    "},
		{"\t\tfoo", "\t\t"},
		{"bare", ""},
		{"", ""},
		{"  \t mixed", "  \t "},
	}
	for _, tt := range tests {
		if got := leadingWhitespace(tt.in); got != tt.want {
			t.Errorf("leadingWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
