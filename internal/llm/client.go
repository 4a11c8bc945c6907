package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client is an abstraction over LLM providers
type Client interface {
	// ParseResume converts plain resume text into the structured resume
	// document, returned as raw JSON for downstream validation.
	ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration. The system
// prompt defines the parsing task and the expected output shape.
func NewClient(ctx context.Context, config *Config, systemPrompt string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, systemPrompt)
	default:
		return NewGroqClient(config, systemPrompt), nil
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client       *genai.Client
	config       *Config
	systemPrompt string
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, systemPrompt string) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:       client,
		config:       config,
		systemPrompt: systemPrompt,
	}, nil
}

// ParseResume sends the resume text to Gemini and returns the cleaned JSON.
func (c *GeminiClient) ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error) {
	model := c.client.GenerativeModel(c.config.Model)
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(c.systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(resumeText))
	if err != nil {
		return nil, &UpstreamError{StatusCode: 500, Message: "gemini call failed", Cause: err}
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(CleanJSONBlock(text)), nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &EmptyResponseError{Model: "gemini"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &EmptyResponseError{Model: "gemini"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &EmptyResponseError{Model: "gemini"}
	}

	return strings.Join(parts, ""), nil
}
