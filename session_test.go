package main

import (
	"context"
	"strings"
	"testing"
)

// fakeProvider returns scripted responses keyed by system prompt so a
// session can run a full pipeline without a network.
type fakeProvider struct {
	responses map[string]string // system prompt -> response text
	fallback  string
	calls     []string // system prompts, in order
}

func (f *fakeProvider) Generate(ctx context.Context, model, systemPrompt string, messages []Message, maxTokens int) (*GenerateResult, error) {
	f.calls = append(f.calls, systemPrompt)
	text, ok := f.responses[systemPrompt]
	if !ok {
		text = f.fallback
	}
	return &GenerateResult{Text: text, InputTokens: 10, OutputTokens: 20}, nil
}

func (f *fakeProvider) GenerateStreaming(ctx context.Context, model, systemPrompt string, messages []Message, maxTokens int, callback StreamCallback) (*GenerateResult, error) {
	result, err := f.Generate(ctx, model, systemPrompt, messages, maxTokens)
	if err != nil {
		return nil, err
	}
	if callback != nil {
		callback(result.Text)
	}
	return result, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) MapModel(canonical string) string { return "fake-" + canonical }

func (f *fakeProvider) DefaultModel() string { return "fake-fast" }

func newTestSession(provider LLMProvider) *MentorSession {
	cfg := DefaultConfig()
	theme := NewTheme(&ThemeSettings{Name: "default"})
	return NewMentorSession(provider, cfg, theme, nil)
}

const analysisResponse = `ERRORS:
None

SUGGESTIONS:
line 1: print("Hello world") -> print("Hello, world!")

TEST_CASES:
1. Input: none Expected: Hello, world!

EXPLANATION:
A greeting program.

SCORE:
85|90|75|80|82`

func TestSessionAnalyze(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]string{AnalysisSystemPrompt: analysisResponse},
	}
	session := newTestSession(provider)
	session.LoadCode(`print("Hello world")`, "python")

	result, err := session.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(result.Annotations) != 1 {
		t.Fatalf("got %d annotations, want 1", len(result.Annotations))
	}
	if result.Score.Overall != 82 {
		t.Errorf("Score.Overall = %d, want 82", result.Score.Overall)
	}
	if len(result.Tests) != 1 {
		t.Errorf("got %d suggested tests, want 1", len(result.Tests))
	}
	if result.Sections.Explanation != "A greeting program." {
		t.Errorf("Explanation = %q", result.Sections.Explanation)
	}
	if result.Metrics.TotalLines != 1 {
		t.Errorf("Metrics.TotalLines = %d, want 1", result.Metrics.TotalLines)
	}
	if session.LastAnalysis() != result {
		t.Error("LastAnalysis should return the new result")
	}

	input, output, total := session.TokenUsage()
	if input != 10 || output != 20 || total != 30 {
		t.Errorf("TokenUsage = (%d, %d, %d), want (10, 20, 30)", input, output, total)
	}
}

func TestSessionAnalyzeNoCode(t *testing.T) {
	session := newTestSession(&fakeProvider{})
	if _, err := session.Analyze(context.Background()); err == nil {
		t.Error("Analyze should fail before LoadCode")
	}
}

func TestSessionAcceptAndDismiss(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]string{AnalysisSystemPrompt: analysisResponse},
	}
	session := newTestSession(provider)
	session.LoadCode(`print("Hello world")`, "python")

	result, err := session.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	buffer, remaining, err := session.Accept(result.Annotations[0].ID)
	if err != nil {
		t.Fatalf("Accept failed: %v", err)
	}
	if buffer != `print("Hello, world!")` {
		t.Errorf("buffer = %q", buffer)
	}
	if len(remaining) != 0 {
		t.Errorf("%d annotations remain, want 0", len(remaining))
	}
	if len(session.LastAnalysis().Annotations) != 0 {
		t.Error("LastAnalysis annotations should track the store")
	}

	// Dismiss on an unknown ID is a no-op, not an error
	remaining, err = session.Dismiss("nonexistent")
	if err != nil {
		t.Fatalf("Dismiss failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("%d annotations remain after dismiss, want 0", len(remaining))
	}
}

func TestSessionFormat(t *testing.T) {
	t.Run("changed code updates buffer", func(t *testing.T) {
		provider := &fakeProvider{
			responses: map[string]string{
				FormatSystemPrompt: "FORMATTED_CODE:\n```python\nx = 1\n```",
			},
		}
		session := newTestSession(provider)
		session.LoadCode("x=1", "python")

		formatted, changed, err := session.Format(context.Background())
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if !changed {
			t.Error("Format should report a change")
		}
		if formatted != "x = 1" {
			t.Errorf("formatted = %q, want %q", formatted, "x = 1")
		}
		if session.Document().Buffer() != "x = 1" {
			t.Error("buffer should hold the formatted code")
		}
	})

	t.Run("whitespace-only difference is not a change", func(t *testing.T) {
		provider := &fakeProvider{
			responses: map[string]string{
				FormatSystemPrompt: "FORMATTED_CODE:\n```python\nx = 1\n```",
			},
		}
		session := newTestSession(provider)
		session.LoadCode("x = 1  ", "python")

		_, changed, err := session.Format(context.Background())
		if err != nil {
			t.Fatalf("Format failed: %v", err)
		}
		if changed {
			t.Error("trailing whitespace should not count as a change")
		}
		if session.Document().Buffer() != "x = 1  " {
			t.Error("buffer should be untouched when nothing changed")
		}
	})
}

func TestSessionGenerate(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]string{
			GenerationSystemPrompt: "```python\ndef add(a, b):\n    return a + b\n```",
			MentorPersona:          "Adds two numbers.",
		},
	}
	session := newTestSession(provider)

	generated, err := session.Generate(context.Background(), "an add function")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(generated.Code, "def add(a, b):") {
		t.Errorf("Code = %q", generated.Code)
	}
	if generated.Explanation != "Adds two numbers." {
		t.Errorf("Explanation = %q", generated.Explanation)
	}
	if generated.Warning != "" {
		t.Errorf("Warning = %q, want empty without a scanner", generated.Warning)
	}
}

func TestSessionLesson(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]string{LessonSystemPrompt: "Recursion is a function calling itself."},
	}
	session := newTestSession(provider)

	var streamed strings.Builder
	text, err := session.Lesson(context.Background(), "recursion", func(chunk string) {
		streamed.WriteString(chunk)
	})
	if err != nil {
		t.Fatalf("Lesson failed: %v", err)
	}
	if text != "Recursion is a function calling itself." {
		t.Errorf("text = %q", text)
	}
	if streamed.String() != text {
		t.Error("streamed chunks should reassemble to the full text")
	}
}

func TestSessionTokenBudget(t *testing.T) {
	provider := &fakeProvider{
		responses: map[string]string{AnalysisSystemPrompt: analysisResponse},
	}
	cfg := DefaultConfig()
	cfg.MaxTotalTokens = 25 // fake provider charges 30 per call
	cfg.WarnTokenThreshold = 20
	theme := NewTheme(&ThemeSettings{Name: "default"})
	session := NewMentorSession(provider, cfg, theme, nil)
	session.LoadCode("x = 1", "python")

	if _, err := session.Analyze(context.Background()); err == nil {
		t.Error("Analyze should fail once the token budget is exceeded")
	}
}

func TestResolveModel(t *testing.T) {
	session := newTestSession(&fakeProvider{})

	if got := session.resolveModel("fast"); got != "fake-fast" {
		t.Errorf("resolveModel(fast) = %q, want fake-fast", got)
	}
	// Concrete model IDs pass through untouched
	if got := session.resolveModel("gemini-2.0-flash"); got != "gemini-2.0-flash" {
		t.Errorf("resolveModel(concrete) = %q, want passthrough", got)
	}
}
