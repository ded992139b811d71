package main

import "testing"

func TestParseProviderType(t *testing.T) {
	tests := []struct {
		input string
		want  ProviderType
	}{
		{"gemini", ProviderGemini},
		{"google", ProviderGemini},
		{"GEMINI", ProviderGemini},
		{"anthropic", ProviderAnthropic},
		{"claude", ProviderAnthropic},
		{"openai", ProviderOpenAI},
		{"gpt", ProviderOpenAI},
		{"bedrock", ProviderBedrock},
		{"aws", ProviderBedrock},
		{"", ProviderGemini},
		{"mystery", ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseProviderType(tt.input); got != tt.want {
				t.Errorf("ParseProviderType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsCanonicalModel(t *testing.T) {
	for _, tier := range []string{ModelFast, ModelBalanced, ModelDeep} {
		if !IsCanonicalModel(tier) {
			t.Errorf("IsCanonicalModel(%q) = false, want true", tier)
		}
	}
	for _, id := range []string{"gemini-2.0-flash", "gpt-4o", ""} {
		if IsCanonicalModel(id) {
			t.Errorf("IsCanonicalModel(%q) = true, want false", id)
		}
	}
}

func TestMapModelGeneric(t *testing.T) {
	t.Run("tiers map per provider", func(t *testing.T) {
		if got := MapModelGeneric(ProviderGemini, ModelFast); got != GeminiModelMap[ModelFast] {
			t.Errorf("gemini fast = %q", got)
		}
		if got := MapModelGeneric(ProviderBedrock, ModelDeep); got != BedrockModelMap[ModelDeep] {
			t.Errorf("bedrock deep = %q", got)
		}
	})

	t.Run("concrete IDs pass through", func(t *testing.T) {
		if got := MapModelGeneric(ProviderAnthropic, "claude-3-5-haiku-latest"); got != "claude-3-5-haiku-latest" {
			t.Errorf("got %q, want passthrough", got)
		}
	})

	t.Run("every provider map covers every tier", func(t *testing.T) {
		maps := map[string]map[string]string{
			"gemini":    GeminiModelMap,
			"anthropic": AnthropicModelMap,
			"openai":    OpenAIModelMap,
			"bedrock":   BedrockModelMap,
		}
		for name, m := range maps {
			for _, tier := range []string{ModelFast, ModelBalanced, ModelDeep} {
				if m[tier] == "" {
					t.Errorf("%s map missing tier %q", name, tier)
				}
			}
		}
	})
}
