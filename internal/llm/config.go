// Package llm provides the resume parsing clients and provider selection.
// The server never talks to a model API directly; everything goes through
// the Client interface so providers can be swapped by configuration.
package llm

import "os"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGroq is the Groq OpenAI-compatible provider (default)
	ProviderGroq Provider = "groq"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds provider and model selection for the parsing client.
type Config struct {
	Provider Provider
	// Model is the primary parsing model.
	Model string
	// FallbackModel handles retry after a rate-limited primary call.
	FallbackModel string
	// BaseURL overrides the OpenAI-compatible endpoint, for tests and
	// self-hosted gateways.
	BaseURL string
	APIKey  string
}

// DefaultConfig returns the default Groq configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider:      ProviderGroq,
		Model:         "llama-3.3-70b-versatile",
		FallbackModel: "llama-3.1-8b-instant",
		BaseURL:       "https://api.groq.com/openai/v1",
	}
}

// DefaultGeminiConfig returns the default Gemini configuration.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    "gemini-2.5-flash",
	}
}

// FromEnv builds a Config from environment variables, falling back to the
// provider defaults for anything unset.
func FromEnv() *Config {
	var config *Config
	switch Provider(os.Getenv("LLM_PROVIDER")) {
	case ProviderGemini:
		config = DefaultGeminiConfig()
		config.APIKey = os.Getenv("GEMINI_API_KEY")
	default:
		config = DefaultConfig()
		config.APIKey = os.Getenv("GROQ_API_KEY")
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.Model = model
	}
	if fallback := os.Getenv("LLM_FALLBACK_MODEL"); fallback != "" {
		config.FallbackModel = fallback
	}
	if base := os.Getenv("LLM_BASE_URL"); base != "" {
		config.BaseURL = base
	}
	return config
}
