package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GroqClient implements Client against Groq's OpenAI-compatible API.
type GroqClient struct {
	config       *Config
	systemPrompt string
	httpClient   *http.Client
}

// NewGroqClient creates a new Groq client.
func NewGroqClient(config *Config, systemPrompt string) *GroqClient {
	return &GroqClient{
		config:       config,
		systemPrompt: systemPrompt,
		httpClient:   &http.Client{Timeout: 90 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResume sends the resume text through chat completions. A rate-limited
// primary call is retried exactly once on the fallback model; any other
// upstream failure is relayed as-is.
func (c *GroqClient) ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error) {
	text, err := c.complete(ctx, c.config.Model, resumeText)
	if err != nil {
		var upstream *UpstreamError
		if c.config.FallbackModel != "" && errors.As(err, &upstream) && upstream.StatusCode == http.StatusTooManyRequests {
			text, err = c.complete(ctx, c.config.FallbackModel, resumeText)
		}
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(CleanJSONBlock(text)), nil
}

// Close is a no-op; the client holds no persistent connections.
func (c *GroqClient) Close() error {
	return nil
}

func (c *GroqClient) complete(ctx context.Context, model, resumeText string) (string, error) {
	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: c.systemPrompt},
			{Role: "user", Content: resumeText},
		},
		Temperature: 0.1, // Low temperature for consistent output
		MaxTokens:   8000,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{StatusCode: http.StatusBadGateway, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", &UpstreamError{StatusCode: http.StatusBadGateway, Message: "failed to read response", Cause: err}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil && resp.StatusCode < 400 {
		return "", &UpstreamError{StatusCode: http.StatusBadGateway, Message: "malformed response", Cause: err}
	}

	if resp.StatusCode >= 400 {
		message := "provider error"
		if parsed.Error != nil && parsed.Error.Message != "" {
			message = parsed.Error.Message
		}
		return "", &UpstreamError{StatusCode: resp.StatusCode, Message: message}
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &EmptyResponseError{Model: model}
	}
	return parsed.Choices[0].Message.Content, nil
}
