package llm

import (
	"context"
	"errors"

	genai "google.golang.org/genai"
)

// GeminiSummarizer is a thin wrapper around the official genai client.
// The API key is passed in explicitly; nothing here reads process env.
type GeminiSummarizer struct {
	cli   *genai.Client
	model string
}

func NewGeminiSummarizer(ctx context.Context, apiKey, model string) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, errors.New("llm: api key is required")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiSummarizer{cli: cli, model: model}, nil
}

func (g *GeminiSummarizer) Name() string { return "Gemini:" + g.model }
func (g *GeminiSummarizer) Close() error { return nil }

func (g *GeminiSummarizer) Summarize(ctx context.Context, req Request) (Summary, error) {
	full := BuildPrompt(req)
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		nil,
	)
	if err != nil {
		return Summary{}, &ServiceError{Provider: g.Name(), Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Summary{}, &ServiceError{Provider: g.Name(), Err: errors.New("empty response")}
	}
	out := Summary{Text: resp.Candidates[0].Content.Parts[0].Text}
	if um := resp.UsageMetadata; um != nil {
		out.InputTokens = int(um.PromptTokenCount)
		out.OutputTokens = int(um.CandidatesTokenCount)
	}
	return out, nil
}
