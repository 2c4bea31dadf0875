package llm

import "fmt"

// New builds the invoker for the named provider.
func New(provider string, opts Options) (Invoker, error) {
	switch provider {
	case ProviderAnthropic, "":
		return NewClaudeClient(opts)
	case ProviderGemini:
		return NewGeminiClient(opts)
	default:
		return nil, fmt.Errorf("unknown model provider: %s", provider)
	}
}
