package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// Message represents a conversation message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateResult contains the response text and token usage
type GenerateResult struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// StreamCallback receives response text incrementally as it arrives
type StreamCallback func(chunk string)

// Ensure BedrockClient implements LLMProvider
var _ LLMProvider = (*BedrockClient)(nil)

// BedrockClient implements LLMProvider via the AWS Bedrock Runtime
type BedrockClient struct {
	client       *bedrockruntime.Client
	defaultModel string
}

// ClaudeRequest represents the request body for Claude models on Bedrock
type ClaudeRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Messages         []Message `json:"messages"`
	System           string    `json:"system,omitempty"`
}

// ClaudeResponse represents the response from Claude models on Bedrock
type ClaudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// claudeStreamChunk is one event in a Bedrock response stream
type claudeStreamChunk struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Message struct {
		Usage struct {
			InputTokens int `json:"input_tokens"`
		} `json:"usage"`
	} `json:"message"`
	Usage struct {
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// NewBedrockProvider creates a BedrockClient as an LLMProvider
func NewBedrockProvider(ctx context.Context, pcfg *ProviderConfig) (LLMProvider, error) {
	region := pcfg.Region
	if region == "" {
		region = getEnvOrDefault("AWS_REGION", "us-east-1")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, ErrAWSConfig(err)
	}

	defaultModel := pcfg.Models.Analyze
	if defaultModel == "" {
		defaultModel = BedrockModelMap[ModelFast]
	}

	return &BedrockClient{
		client:       bedrockruntime.NewFromConfig(cfg),
		defaultModel: defaultModel,
	}, nil
}

// Name returns the provider name
func (b *BedrockClient) Name() string {
	return "AWS Bedrock"
}

// MapModel maps a canonical tier to a Bedrock model ID
func (b *BedrockClient) MapModel(canonical string) string {
	return MapModelGeneric(ProviderBedrock, canonical)
}

// DefaultModel returns the default model
func (b *BedrockClient) DefaultModel() string {
	return b.defaultModel
}

// Generate sends a prompt to a Claude model on Bedrock
func (b *BedrockClient) Generate(ctx context.Context, model, systemPrompt string, messages []Message, maxTokens int) (*GenerateResult, error) {
	if IsCanonicalModel(model) {
		model = b.MapModel(model)
	}

	requestBody, err := json.Marshal(ClaudeRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        maxTokens,
		Messages:         messages,
		System:           systemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(model),
		Body:        requestBody,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, ErrProviderInvoke("Bedrock", err)
	}

	var response ClaudeResponse
	if err := json.Unmarshal(output.Body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var text string
	for _, content := range response.Content {
		if content.Type == "text" {
			text += content.Text
		}
	}

	return &GenerateResult{
		Text:         text,
		InputTokens:  response.Usage.InputTokens,
		OutputTokens: response.Usage.OutputTokens,
	}, nil
}

// GenerateStreaming streams a response from a Claude model on Bedrock
func (b *BedrockClient) GenerateStreaming(ctx context.Context, model, systemPrompt string, messages []Message, maxTokens int, callback StreamCallback) (*GenerateResult, error) {
	if IsCanonicalModel(model) {
		model = b.MapModel(model)
	}

	requestBody, err := json.Marshal(ClaudeRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        maxTokens,
		Messages:         messages,
		System:           systemPrompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	output, err := b.client.InvokeModelWithResponseStream(ctx, &bedrockruntime.InvokeModelWithResponseStreamInput{
		ModelId:     aws.String(model),
		Body:        requestBody,
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, ErrProviderInvoke("Bedrock", err)
	}

	stream := output.GetStream()
	defer func() { _ = stream.Close() }()

	result := &GenerateResult{}
	for event := range stream.Events() {
		chunk, ok := event.(*types.ResponseStreamMemberChunk)
		if !ok {
			continue
		}

		var parsed claudeStreamChunk
		if err := json.Unmarshal(chunk.Value.Bytes, &parsed); err != nil {
			continue
		}

		switch parsed.Type {
		case "message_start":
			result.InputTokens = parsed.Message.Usage.InputTokens
		case "content_block_delta":
			if parsed.Delta.Text != "" {
				result.Text += parsed.Delta.Text
				if callback != nil {
					callback(parsed.Delta.Text)
				}
			}
		case "message_delta":
			if parsed.Usage.OutputTokens > 0 {
				result.OutputTokens = parsed.Usage.OutputTokens
			}
		}
	}

	if err := stream.Err(); err != nil {
		return nil, ErrProviderInvoke("Bedrock", err)
	}

	return result, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
