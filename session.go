package main

import (
	"context"
	"fmt"
	"strings"
)

// MentorSession ties the provider, the review pipeline, and the
// history store together for one interactive session. A session owns
// one Document at a time; loading new code replaces it.
type MentorSession struct {
	provider     LLMProvider
	config       *Config
	theme        *Theme
	tokenTracker *TokenTracker
	history      *HistoryStore
	guard        *LLMGuardClient

	document *Document
	language string

	lastAnalysis *AnalysisResult
}

// AnalysisResult bundles everything one analysis pass produced.
type AnalysisResult struct {
	Sections    AnalysisSections
	Score       Score
	Tests       []SuggestedTest
	Annotations []Annotation
	Metrics     CodeMetrics

	SubmissionID int64 // 0 when history is disabled
}

// NewMentorSession builds a session from loaded configuration. The
// history store may be nil when history is disabled.
func NewMentorSession(provider LLMProvider, cfg *Config, theme *Theme, history *HistoryStore) *MentorSession {
	return &MentorSession{
		provider:     provider,
		config:       cfg,
		theme:        theme,
		tokenTracker: NewTokenTracker(cfg.MaxTotalTokens, cfg.WarnTokenThreshold),
		history:      history,
		guard:        NewLLMGuardClient(),
		language:     "python",
	}
}

// LoadCode replaces the session's working document.
func (s *MentorSession) LoadCode(code, language string) {
	s.document = NewDocument(code)
	s.language = NormalizeLanguage(language)
	s.lastAnalysis = nil
}

// Document returns the current working document, or nil before the
// first LoadCode.
func (s *MentorSession) Document() *Document {
	return s.document
}

// Language returns the session's canonical language.
func (s *MentorSession) Language() string {
	return s.language
}

// LastAnalysis returns the most recent analysis result, or nil.
func (s *MentorSession) LastAnalysis() *AnalysisResult {
	return s.lastAnalysis
}

// TokenUsage exposes the session's token tracker totals.
func (s *MentorSession) TokenUsage() (input, output, total int) {
	return s.tokenTracker.GetUsage()
}

// resolveModel turns a configured tier name into a provider model ID.
// Concrete model IDs pass through untouched.
func (s *MentorSession) resolveModel(configured string) string {
	if IsCanonicalModel(configured) {
		return s.provider.MapModel(configured)
	}
	return configured
}

// trackTokens charges a result against the session budget.
func (s *MentorSession) trackTokens(result *GenerateResult) (string, error) {
	ok, warning := s.tokenTracker.Add(result.InputTokens, result.OutputTokens)
	if !ok {
		return warning, fmt.Errorf("token budget exceeded")
	}
	return warning, nil
}

// Analyze runs a full review of the loaded code: one provider call,
// section splitting, annotation reconciliation against the buffer,
// score and test parsing, static metrics, and a history record.
func (s *MentorSession) Analyze(ctx context.Context) (*AnalysisResult, error) {
	if s.document == nil {
		return nil, fmt.Errorf("no code loaded")
	}

	code := s.document.Buffer()
	if s.guard.IsEnabled() {
		if scan, err := s.guard.ScanSubmission(code); err == nil {
			if issues := s.guard.FormatSecurityIssues(scan); issues != "" {
				return nil, fmt.Errorf("submission blocked by security scan:\n%s", issues)
			}
		}
	}
	messages := []Message{{Role: "user", Content: BuildAnalysisPrompt(code, s.language)}}

	result, err := s.provider.Generate(ctx, s.resolveModel(s.config.AnalyzeModel),
		AnalysisSystemPrompt, messages, s.config.MaxTokens)
	if err != nil {
		return nil, ErrProviderInvoke(s.provider.Name(), err)
	}
	if strings.TrimSpace(result.Text) == "" {
		return nil, ErrEmptyResponse("analysis")
	}
	if _, err := s.trackTokens(result); err != nil {
		return nil, err
	}

	sections := SplitAnalysisSections(result.Text)
	analysis := &AnalysisResult{
		Sections:    sections,
		Score:       ParseScore(sections.Score),
		Tests:       ParseSuggestedTests(sections.TestCases),
		Annotations: s.document.Analyze(sections.Errors, sections.Suggestions),
		Metrics:     ComputeMetrics(code, s.language),
	}

	if s.history != nil {
		sub := &Submission{
			Code:        code,
			Language:    s.language,
			Errors:      sections.Errors,
			Suggestions: sections.Suggestions,
			TestCases:   sections.TestCases,
			Explanation: sections.Explanation,
			Overall:     analysis.Score.Overall,
		}
		// History failures never fail the analysis.
		if id, err := s.history.Save(ctx, sub); err == nil {
			analysis.SubmissionID = id
		}
	}

	s.lastAnalysis = analysis
	return analysis, nil
}

// Accept applies an annotation's fix to the buffer and returns the
// updated buffer plus the surviving annotations.
func (s *MentorSession) Accept(id string) (string, []Annotation, error) {
	if s.document == nil {
		return "", nil, fmt.Errorf("no code loaded")
	}
	buffer, remaining := s.document.Accept(id)
	if s.lastAnalysis != nil {
		s.lastAnalysis.Annotations = remaining
	}
	return buffer, remaining, nil
}

// Dismiss discards an annotation without editing the buffer.
func (s *MentorSession) Dismiss(id string) ([]Annotation, error) {
	if s.document == nil {
		return nil, fmt.Errorf("no code loaded")
	}
	remaining := s.document.Dismiss(id)
	if s.lastAnalysis != nil {
		s.lastAnalysis.Annotations = remaining
	}
	return remaining, nil
}

// Visualize asks the provider for a step-by-step execution trace of
// the loaded code.
func (s *MentorSession) Visualize(ctx context.Context) (*Visualization, error) {
	if s.document == nil {
		return nil, fmt.Errorf("no code loaded")
	}

	messages := []Message{{Role: "user", Content: BuildVisualizationPrompt(s.document.Buffer(), s.language)}}
	result, err := s.provider.Generate(ctx, s.resolveModel(s.config.VisualizeModel),
		VisualizationSystemPrompt, messages, s.config.MaxTokens)
	if err != nil {
		return nil, ErrProviderInvoke(s.provider.Name(), err)
	}
	if strings.TrimSpace(result.Text) == "" {
		return nil, ErrEmptyResponse("visualization")
	}
	if _, err := s.trackTokens(result); err != nil {
		return nil, err
	}

	viz := ParseVisualization(result.Text)
	return &viz, nil
}

// Format asks the provider to reformat the loaded code without
// changing behavior. The buffer is updated only when formatting
// actually changed something; the bool reports that.
func (s *MentorSession) Format(ctx context.Context) (string, bool, error) {
	if s.document == nil {
		return "", false, fmt.Errorf("no code loaded")
	}

	original := s.document.Buffer()
	messages := []Message{{Role: "user", Content: BuildFormatPrompt(original, s.language)}}
	result, err := s.provider.Generate(ctx, s.resolveModel(s.config.AnalyzeModel),
		FormatSystemPrompt, messages, s.config.MaxTokens)
	if err != nil {
		return "", false, ErrProviderInvoke(s.provider.Name(), err)
	}
	if _, err := s.trackTokens(result); err != nil {
		return "", false, err
	}

	formatted := extractFormattedCode(result.Text)
	if formatted == "" {
		return original, false, nil
	}
	if !codeWasChanged(original, formatted) {
		return original, false, nil
	}

	s.document.SetBuffer(formatted)
	return formatted, true, nil
}

// GeneratedCode is the output of a generation request.
type GeneratedCode struct {
	Code        string
	Explanation string
	Warning     string // Non-empty when the security scan flagged the output
}

// Generate produces code for a free-text request, then asks for a
// one-sentence explanation in a second, smaller call. The explanation
// is best-effort; generation succeeds without it.
func (s *MentorSession) Generate(ctx context.Context, request string) (*GeneratedCode, error) {
	messages := []Message{{Role: "user", Content: BuildGenerationPrompt(request, s.language)}}
	result, err := s.provider.Generate(ctx, s.resolveModel(s.config.GenerateModel),
		GenerationSystemPrompt, messages, s.config.MaxTokens)
	if err != nil {
		return nil, ErrProviderInvoke(s.provider.Name(), err)
	}
	if _, err := s.trackTokens(result); err != nil {
		return nil, err
	}

	code := extractCode(result.Text)
	if code == "" {
		code = strings.TrimSpace(result.Text)
	}
	if code == "" {
		return nil, ErrEmptyResponse("generation")
	}

	generated := &GeneratedCode{Code: code}
	if s.guard.IsEnabled() {
		if scan, err := s.guard.ScanGenerated(code); err == nil {
			generated.Warning = s.guard.FormatSecurityIssues(scan)
		}
	}

	explainMessages := []Message{{Role: "user", Content: BuildExplainPrompt(code)}}
	if explainResult, err := s.provider.Generate(ctx, s.resolveModel(s.config.AnalyzeModel),
		MentorPersona, explainMessages, 256); err == nil {
		if _, budgetErr := s.trackTokens(explainResult); budgetErr == nil {
			generated.Explanation = strings.TrimSpace(explainResult.Text)
		}
	}

	return generated, nil
}

// Lesson streams a short lesson on a topic through the callback and
// returns the complete text.
func (s *MentorSession) Lesson(ctx context.Context, topic string, onChunk StreamCallback) (string, error) {
	messages := []Message{{Role: "user", Content: BuildLessonPrompt(topic, s.language)}}
	result, err := s.provider.GenerateStreaming(ctx, s.resolveModel(s.config.LessonModel),
		LessonSystemPrompt, messages, s.config.MaxTokens, onChunk)
	if err != nil {
		return "", ErrProviderInvoke(s.provider.Name(), err)
	}
	if strings.TrimSpace(result.Text) == "" {
		return "", ErrEmptyResponse("lesson")
	}
	if _, err := s.trackTokens(result); err != nil {
		return "", err
	}
	return result.Text, nil
}
