package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(resp *genai.GenerateContentResponse, err error) (*GeminiClient, *[]string) {
	var prompts []string
	g := &GeminiClient{modelName: "gemini-test", maxTokens: 512}
	g.generate = func(ctx context.Context, systemPrompt, userPrompt string) (*genai.GenerateContentResponse, error) {
		prompts = append(prompts, systemPrompt, userPrompt)
		return resp, err
	}
	return g, &prompts
}

func candidate(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func TestGeminiInvokeJoinsTextParts(t *testing.T) {
	g, prompts := newTestGemini(candidate(genai.Text(`{"values":`), genai.Text(`["A"]}`)), nil)

	text, err := g.Invoke(context.Background(), "system", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"values":["A"]}`, text)
	assert.Equal(t, []string{"system", "user"}, *prompts)
}

func TestGeminiInvokeFailures(t *testing.T) {
	boom := errors.New("quota exceeded")
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		err  error
		want string
	}{
		{"request error", nil, boom, "quota exceeded"},
		{"no candidates", &genai.GenerateContentResponse{}, nil, "no content generated"},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, nil, "no content generated"},
		{"empty parts", candidate(), nil, "no content generated"},
		{"no text parts", candidate(genai.Blob{MIMEType: "image/png", Data: []byte{1}}), nil, "no text parts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGemini(tt.resp, tt.err)

			_, err := g.Invoke(context.Background(), "system", "user")

			var invErr *ModelInvocationError
			require.ErrorAs(t, err, &invErr)
			assert.Equal(t, ProviderGemini, invErr.Provider)
			assert.Equal(t, "gemini-test", invErr.Model)
			assert.ErrorContains(t, err, tt.want)
			if tt.err != nil {
				assert.ErrorIs(t, err, boom)
			}
		})
	}
}

func TestGeminiCloseWithoutClient(t *testing.T) {
	g, _ := newTestGemini(nil, nil)
	assert.NoError(t, g.Close())
}
