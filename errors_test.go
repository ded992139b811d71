package main

import (
	"errors"
	"strings"
	"testing"
)

func TestUserError(t *testing.T) {
	t.Run("error without cause", func(t *testing.T) {
		err := &UserError{Message: "test error"}
		if err.Error() != "test error" {
			t.Errorf("Error() = %q, want %q", err.Error(), "test error")
		}
	})

	t.Run("error with cause", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &UserError{Message: "test error", Cause: cause}
		expected := "test error: underlying error"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &UserError{Message: "test error", Cause: cause}
		if err.Unwrap() != cause {
			t.Error("Unwrap() did not return the cause")
		}
	})
}

func TestFormatUserError(t *testing.T) {
	t.Run("formats UserError with suggestion", func(t *testing.T) {
		err := &UserError{
			Message:    "test error",
			Suggestion: "try this fix",
		}
		output := FormatUserError(err)
		if !strings.Contains(output, "test error") {
			t.Error("output should contain error message")
		}
		if !strings.Contains(output, "try this fix") {
			t.Error("output should contain suggestion")
		}
	})

	t.Run("formats generic error with auto-suggestion", func(t *testing.T) {
		err := errors.New("no valid credential sources")
		output := FormatUserError(err)
		if !strings.Contains(output, "no valid credential") {
			t.Error("output should contain error message")
		}
		if !strings.Contains(output, "aws configure") {
			t.Error("output should contain AWS credential suggestion")
		}
	})
}

func TestGetSuggestionForError(t *testing.T) {
	tests := []struct {
		name        string
		errStr      string
		shouldMatch string
	}{
		{
			name:        "missing API key",
			errStr:      "invalid api key provided",
			shouldMatch: "GEMINI_API_KEY",
		},
		{
			name:        "unauthorized",
			errStr:      "HTTP 401 Unauthorized",
			shouldMatch: "API key",
		},
		{
			name:        "quota exhausted",
			errStr:      "quota exceeded for this project",
			shouldMatch: "rate-limited",
		},
		{
			name:        "throttling",
			errStr:      "throttled by service",
			shouldMatch: "rate-limited",
		},
		{
			name:        "AWS credentials error",
			errStr:      "no valid credential sources",
			shouldMatch: "aws configure",
		},
		{
			name:        "AWS region error",
			errStr:      "region not specified",
			shouldMatch: "AWS_REGION",
		},
		{
			name:        "model not found",
			errStr:      "model anthropic.claude not found",
			shouldMatch: "MENTOR_MODEL",
		},
		{
			name:        "timeout",
			errStr:      "context deadline exceeded (timeout)",
			shouldMatch: "timed out",
		},
		{
			name:        "network error",
			errStr:      "connection refused",
			shouldMatch: "network",
		},
		{
			name:        "unknown error",
			errStr:      "some random error",
			shouldMatch: "", // no suggestion
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestion := getSuggestionForError(tt.errStr)
			if tt.shouldMatch == "" {
				if suggestion != "" {
					t.Errorf("expected no suggestion, got %q", suggestion)
				}
			} else {
				if !strings.Contains(strings.ToLower(suggestion), strings.ToLower(tt.shouldMatch)) {
					t.Errorf("suggestion %q should contain %q", suggestion, tt.shouldMatch)
				}
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	t.Run("ErrMissingAPIKey", func(t *testing.T) {
		err := ErrMissingAPIKey("gemini", "GEMINI_API_KEY")
		if !strings.Contains(err.Message, "gemini") {
			t.Error("should mention the provider")
		}
		if !strings.Contains(err.Suggestion, "GEMINI_API_KEY") {
			t.Error("should name the env var to set")
		}
	})

	t.Run("ErrAWSConfig", func(t *testing.T) {
		cause := errors.New("config error")
		err := ErrAWSConfig(cause)
		if err.Cause != cause {
			t.Error("should preserve cause")
		}
		if !strings.Contains(err.Suggestion, "aws configure") {
			t.Error("should suggest aws configure")
		}
	})

	t.Run("ErrProviderInvoke", func(t *testing.T) {
		cause := errors.New("network error")
		err := ErrProviderInvoke("openai", cause)
		if !strings.Contains(err.Message, "openai") {
			t.Error("should include the provider name")
		}
		if err.Cause != cause {
			t.Error("should preserve cause")
		}
	})

	t.Run("ErrHistoryStore", func(t *testing.T) {
		cause := errors.New("disk full")
		err := ErrHistoryStore(cause)
		if err.Cause != cause {
			t.Error("should preserve cause")
		}
		if !strings.Contains(err.Suggestion, "MENTOR_HISTORY") {
			t.Error("should mention the history toggle")
		}
	})

	t.Run("ErrEmptyResponse", func(t *testing.T) {
		err := ErrEmptyResponse("analysis")
		if !strings.Contains(err.Message, "analysis") {
			t.Error("should name the task")
		}
	})
}
