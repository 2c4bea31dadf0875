// Package llm sends prompts to hosted text-generation models.
package llm

import (
	"context"
	"fmt"
)

// Invoker sends one system prompt and one user prompt to a model and
// returns the generated text. Implementations never retry.
type Invoker interface {
	Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ModelInvocationError reports a failed model call: transport or API
// errors, and responses that carry no text.
type ModelInvocationError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("%s model %s invocation failed: %v", e.Provider, e.Model, e.Err)
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Err
}

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultGeminiModel    = "gemini-2.5-flash-lite"
	DefaultMaxTokens      = 4000
)

// Options configures a provider client.
type Options struct {
	APIKey    string
	Model     string
	MaxTokens int
	// BaseURL overrides the provider endpoint. Only honored by the Anthropic client.
	BaseURL string
}
