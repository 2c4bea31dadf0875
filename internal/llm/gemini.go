package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client    *genai.Client
	modelName string
	maxTokens int32

	// generate performs the request; tests replace it.
	generate func(ctx context.Context, systemPrompt, userPrompt string) (*genai.GenerateContentResponse, error)
}

func NewGeminiClient(opts Options) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelName := opts.Model
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	g := &GeminiClient{
		client:    client,
		modelName: modelName,
		maxTokens: int32(maxTokens),
	}
	g.generate = g.generateContent
	return g, nil
}

func (g *GeminiClient) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GeminiClient) generateContent(ctx context.Context, systemPrompt, userPrompt string) (*genai.GenerateContentResponse, error) {
	// The system instruction lives on the model handle, so each call gets its own.
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(g.maxTokens)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	return model.GenerateContent(ctx, genai.Text(userPrompt))
}

func (g *GeminiClient) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := g.generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", g.fail(fmt.Errorf("failed to generate content: %w", err))
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", g.fail(errors.New("no content generated"))
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", g.fail(errors.New("response contained no text parts"))
	}
	return strings.Join(parts, ""), nil
}

func (g *GeminiClient) fail(err error) error {
	return &ModelInvocationError{Provider: ProviderGemini, Model: g.modelName, Err: err}
}
