package main

import (
	"os"
	"strconv"
)

// Config holds runtime configuration
type Config struct {
	// Provider configuration
	Provider string // LLM provider name (gemini, anthropic, openai, bedrock)

	// Model configuration (tier names, resolved per provider)
	AnalyzeModel   string
	GenerateModel  string
	VisualizeModel string
	LessonModel    string

	// Token budget
	MaxTokens          int // Maximum tokens per response (default: 4096)
	MaxTotalTokens     int // Maximum total tokens per session (0 = unlimited)
	WarnTokenThreshold int // Warn when approaching limit (default: 80% of max)

	// History
	HistoryEnabled bool
	HistoryPath    string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:           "gemini",
		AnalyzeModel:       "fast",
		GenerateModel:      "balanced",
		VisualizeModel:     "fast",
		LessonModel:        "balanced",
		MaxTokens:          4096,
		MaxTotalTokens:     150000,
		WarnTokenThreshold: 120000,
		HistoryEnabled:     true,
	}
}

// LoadConfig loads configuration from settings, then environment overrides
func LoadConfig(settings *Settings) *Config {
	cfg := DefaultConfig()

	if settings != nil {
		if settings.Provider.Name != "" {
			cfg.Provider = settings.Provider.Name
		}
		if settings.Models.Analyze != "" {
			cfg.AnalyzeModel = settings.Models.Analyze
		}
		if settings.Models.Generate != "" {
			cfg.GenerateModel = settings.Models.Generate
		}
		if settings.Models.Visualize != "" {
			cfg.VisualizeModel = settings.Models.Visualize
		}
		if settings.Models.Lesson != "" {
			cfg.LessonModel = settings.Models.Lesson
		}
		if settings.Tokens.MaxPerResponse > 0 {
			cfg.MaxTokens = settings.Tokens.MaxPerResponse
		}
		if settings.Tokens.MaxPerSession >= 0 {
			cfg.MaxTotalTokens = settings.Tokens.MaxPerSession
		}
		cfg.HistoryEnabled = settings.History.Enabled
		cfg.HistoryPath = settings.History.Path
	}

	if val := os.Getenv("MENTOR_PROVIDER"); val != "" {
		cfg.Provider = val
	}
	if val := os.Getenv("MENTOR_MODEL"); val != "" {
		cfg.AnalyzeModel = val
		cfg.GenerateModel = val
		cfg.VisualizeModel = val
		cfg.LessonModel = val
	}
	if val := os.Getenv("MENTOR_MAX_TOKENS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if val := os.Getenv("MENTOR_MAX_TOTAL_TOKENS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			cfg.MaxTotalTokens = n // 0 = unlimited
		}
	}
	if val := os.Getenv("MENTOR_HISTORY"); val != "" {
		cfg.HistoryEnabled = val != "0" && val != "false" && val != "off"
	}

	// Calculate warning threshold (80% of max)
	if cfg.MaxTotalTokens > 0 {
		cfg.WarnTokenThreshold = cfg.MaxTotalTokens * 80 / 100
	}

	return cfg
}

// TokenTracker tracks token usage across the session
type TokenTracker struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	MaxTokens    int
	WarnAt       int
	warned       bool
}

// NewTokenTracker creates a new token tracker with the given limits
func NewTokenTracker(maxTokens, warnAt int) *TokenTracker {
	return &TokenTracker{
		MaxTokens: maxTokens,
		WarnAt:    warnAt,
	}
}

// Add adds tokens to the tracker and returns (ok, warning message)
func (t *TokenTracker) Add(input, output int) (bool, string) {
	t.InputTokens += input
	t.OutputTokens += output
	t.TotalTokens = t.InputTokens + t.OutputTokens

	// Check if unlimited
	if t.MaxTokens == 0 {
		return true, ""
	}

	if t.TotalTokens > t.MaxTokens {
		return false, "Token budget exceeded. Start a new session to continue."
	}

	// Warn once when approaching the limit
	if !t.warned && t.WarnAt > 0 && t.TotalTokens >= t.WarnAt {
		t.warned = true
		remaining := t.MaxTokens - t.TotalTokens
		return true, formatTokenWarning(remaining, t.MaxTokens)
	}

	return true, ""
}

// GetUsage returns current token usage
func (t *TokenTracker) GetUsage() (input, output, total int) {
	return t.InputTokens, t.OutputTokens, t.TotalTokens
}

// Reset resets the token tracker
func (t *TokenTracker) Reset() {
	t.InputTokens = 0
	t.OutputTokens = 0
	t.TotalTokens = 0
	t.warned = false
}

func formatTokenWarning(remaining, max int) string {
	pct := (max - remaining) * 100 / max
	return "Warning: " + strconv.Itoa(pct) + "% of token budget used (" + strconv.Itoa(remaining) + " tokens remaining)."
}
