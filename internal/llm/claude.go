package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type ClaudeClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewClaudeClient(opts Options) (*ClaudeClient, error) {
	if opts.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		// A failed facet call must surface immediately; the SDK retries twice by default.
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}

	model := opts.Model
	if model == "" {
		model = DefaultAnthropicModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	return &ClaudeClient{
		client:    anthropic.NewClient(reqOpts...),
		model:     model,
		maxTokens: int64(maxTokens),
	}, nil
}

func (c *ClaudeClient) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", c.fail(fmt.Errorf("Claude API error: %w", err))
	}

	if len(message.Content) == 0 {
		return "", c.fail(errors.New("empty response from Claude"))
	}

	// Only the first block counts; anything other than text is a failed call.
	tb, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", c.fail(fmt.Errorf("unexpected content block type %q", message.Content[0].Type))
	}
	return tb.Text, nil
}

func (c *ClaudeClient) fail(err error) error {
	return &ModelInvocationError{Provider: ProviderAnthropic, Model: c.model, Err: err}
}
