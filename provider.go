package main

import (
	"context"
	"fmt"
	"strings"
)

// ProviderType represents the LLM provider
type ProviderType string

const (
	ProviderGemini    ProviderType = "gemini"
	ProviderAnthropic ProviderType = "anthropic"
	ProviderOpenAI    ProviderType = "openai"
	ProviderBedrock   ProviderType = "bedrock"
)

// LLMProvider is the abstract interface for LLM providers
type LLMProvider interface {
	// Generate sends a prompt to the LLM and returns the response
	Generate(ctx context.Context, model, systemPrompt string, messages []Message, maxTokens int) (*GenerateResult, error)

	// GenerateStreaming sends a prompt and streams the response
	GenerateStreaming(ctx context.Context, model, systemPrompt string, messages []Message, maxTokens int, callback StreamCallback) (*GenerateResult, error)

	// Name returns the provider name for display
	Name() string

	// MapModel maps a canonical tier name (fast/balanced/deep) to a provider-specific ID
	MapModel(canonical string) string

	// DefaultModel returns the provider's default model
	DefaultModel() string
}

// ProviderConfig holds configuration for initializing providers
type ProviderConfig struct {
	Provider ProviderType
	APIKey   string // For non-Bedrock providers
	Region   string // For Bedrock
	Models   ModelSettings
}

// NewProvider creates an LLM provider based on configuration
func NewProvider(ctx context.Context, cfg *ProviderConfig) (LLMProvider, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiProvider(cfg)
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case ProviderBedrock:
		return NewBedrockProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// ParseProviderType converts a string to ProviderType
func ParseProviderType(s string) ProviderType {
	switch strings.ToLower(s) {
	case "gemini", "google":
		return ProviderGemini
	case "anthropic", "claude":
		return ProviderAnthropic
	case "openai", "gpt":
		return ProviderOpenAI
	case "bedrock", "aws":
		return ProviderBedrock
	default:
		return ProviderGemini // Default to Gemini
	}
}

// Canonical model tiers used throughout the mentor
const (
	ModelFast     = "fast"
	ModelBalanced = "balanced"
	ModelDeep     = "deep"
)

// GeminiModelMap maps canonical tiers to Gemini model IDs
var GeminiModelMap = map[string]string{
	ModelFast:     "gemini-2.0-flash-lite",
	ModelBalanced: "gemini-2.0-flash",
	ModelDeep:     "gemini-2.0-pro",
}

// AnthropicModelMap maps canonical tiers to Anthropic API model IDs
var AnthropicModelMap = map[string]string{
	ModelFast:     "claude-3-5-haiku-latest",
	ModelBalanced: "claude-sonnet-4-5-20250929",
	ModelDeep:     "claude-opus-4-5-20251101",
}

// OpenAIModelMap maps canonical tiers to OpenAI model IDs
var OpenAIModelMap = map[string]string{
	ModelFast:     "gpt-5-mini-2025-08-07",
	ModelBalanced: "gpt-5.1-2025-11-13",
	ModelDeep:     "gpt-5.1-codex-max",
}

// BedrockModelMap maps canonical tiers to Bedrock model IDs
var BedrockModelMap = map[string]string{
	ModelFast:     "global.anthropic.claude-haiku-4-5-20251001-v1:0",
	ModelBalanced: "global.anthropic.claude-sonnet-4-5-20250929-v1:0",
	ModelDeep:     "global.anthropic.claude-opus-4-5-20251101-v1:0",
}

// MapModelGeneric maps a canonical tier using the appropriate provider map
func MapModelGeneric(provider ProviderType, canonical string) string {
	var modelMap map[string]string
	switch provider {
	case ProviderGemini:
		modelMap = GeminiModelMap
	case ProviderAnthropic:
		modelMap = AnthropicModelMap
	case ProviderOpenAI:
		modelMap = OpenAIModelMap
	case ProviderBedrock:
		modelMap = BedrockModelMap
	default:
		modelMap = GeminiModelMap
	}

	if mapped, ok := modelMap[canonical]; ok {
		return mapped
	}
	// Not a canonical tier: assume it's already a full model ID
	return canonical
}

// IsCanonicalModel checks if a model name is a canonical tier
func IsCanonicalModel(model string) bool {
	switch model {
	case ModelFast, ModelBalanced, ModelDeep:
		return true
	default:
		return false
	}
}
