package main

import (
	"errors"
	"fmt"
	"strings"
)

// UserError represents an error that should be displayed to the user with helpful context
type UserError struct {
	Message    string
	Cause      error
	Suggestion string
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// FormatUserError formats an error for user display with colors and suggestions
func FormatUserError(err error) string {
	var sb strings.Builder

	var userErr *UserError
	if errors.As(err, &userErr) {
		sb.WriteString(fmt.Sprintf("\033[91mError:\033[0m %s\n", userErr.Message))
		if userErr.Cause != nil {
			sb.WriteString(fmt.Sprintf("       Cause: %v\n", userErr.Cause))
		}
		if userErr.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("\n\033[93mSuggestion:\033[0m %s\n", userErr.Suggestion))
		}
	} else {
		errStr := err.Error()
		sb.WriteString(fmt.Sprintf("\033[91mError:\033[0m %s\n", errStr))

		// Add suggestions based on common error patterns
		suggestion := getSuggestionForError(errStr)
		if suggestion != "" {
			sb.WriteString(fmt.Sprintf("\n\033[93mSuggestion:\033[0m %s\n", suggestion))
		}
	}

	return sb.String()
}

// getSuggestionForError returns a helpful suggestion based on error content
func getSuggestionForError(errStr string) string {
	errLower := strings.ToLower(errStr)

	// API key errors
	if strings.Contains(errLower, "api key") ||
		strings.Contains(errLower, "api_key") ||
		strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "401") {
		return "Check your provider API key. Set GEMINI_API_KEY, ANTHROPIC_API_KEY, or OPENAI_API_KEY depending on MENTOR_PROVIDER."
	}

	// Quota and rate limiting
	if strings.Contains(errLower, "quota") ||
		strings.Contains(errLower, "throttl") ||
		strings.Contains(errLower, "rate limit") ||
		strings.Contains(errLower, "429") {
		return "You're being rate-limited. Wait a moment and try again, or check your provider quota."
	}

	// AWS/Bedrock related errors
	if strings.Contains(errLower, "no valid credential") ||
		strings.Contains(errLower, "unable to sign request") ||
		strings.Contains(errLower, "security token") {
		return "Check your AWS credentials. Run 'aws configure' or set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables."
	}

	if strings.Contains(errLower, "region") {
		return "Set the AWS_REGION environment variable (e.g., 'export AWS_REGION=us-east-1')."
	}

	if strings.Contains(errLower, "model") && strings.Contains(errLower, "not found") {
		return "The specified model may not be available. Try setting MENTOR_MODEL to a different tier (fast, balanced, deep)."
	}

	if strings.Contains(errLower, "timeout") {
		return "The operation timed out. This might be due to slow network or a long analysis. Try again or check your connection."
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "network") {
		return "Check your network connection. You may be offline or behind a firewall."
	}

	return ""
}

// Common error constructors

// ErrMissingAPIKey creates an error for a provider with no configured key
func ErrMissingAPIKey(provider, envVar string) *UserError {
	return &UserError{
		Message:    fmt.Sprintf("No API key configured for provider: %s", provider),
		Suggestion: fmt.Sprintf("Set the %s environment variable, or switch providers with MENTOR_PROVIDER.", envVar),
	}
}

// ErrProviderInvoke creates an error for provider API issues
func ErrProviderInvoke(provider string, cause error) *UserError {
	return &UserError{
		Message: fmt.Sprintf("Failed to call %s API", provider),
		Cause:   cause,
		Suggestion: `Possible issues:
       1. Check your API key and network connection
       2. Verify your account has quota remaining
       3. Try a different provider with MENTOR_PROVIDER`,
	}
}

// ErrAWSConfig creates an error for AWS configuration issues
func ErrAWSConfig(cause error) *UserError {
	return &UserError{
		Message: "Failed to initialize AWS configuration",
		Cause:   cause,
		Suggestion: `Check your AWS credentials:
       1. Run 'aws configure' to set up credentials
       2. Or set environment variables:
          export AWS_ACCESS_KEY_ID=your_key
          export AWS_SECRET_ACCESS_KEY=your_secret
          export AWS_REGION=us-east-1`,
	}
}

// ErrHistoryStore creates an error for local history database failures
func ErrHistoryStore(cause error) *UserError {
	return &UserError{
		Message:    "Failed to access the local history database",
		Cause:      cause,
		Suggestion: "Check permissions on ~/.aimentor, or disable history with MENTOR_HISTORY=off.",
	}
}

// ErrEmptyResponse creates an error for a model that returned nothing usable
func ErrEmptyResponse(task string) *UserError {
	return &UserError{
		Message:    fmt.Sprintf("The model returned an empty response for task: %s", task),
		Suggestion: "Try again; if it persists, switch models or providers.",
	}
}
