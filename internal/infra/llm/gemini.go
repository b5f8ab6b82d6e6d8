package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

type geminiProvider struct {
	client *genai.Client
	opts   callOptions
}

func newGeminiProvider(ctx context.Context, apiKey, baseURL string, hc *http.Client, opts callOptions) (*geminiProvider, error) {
	cc := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: hc,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &geminiProvider{client: client, opts: opts}, nil
}

func (p *geminiProvider) GenerateValues(ctx context.Context, req Request) ([]Result, error) {
	prompt, err := BuildUserPrompt(req)
	if err != nil {
		return nil, err
	}

	gcfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(p.opts.temperature)),
		ResponseMIMEType:  "application/json",
	}
	if p.opts.maxTokens > 0 {
		gcfg.MaxOutputTokens = int32(p.opts.maxTokens)
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.opts.modelOr(defaultGeminiModel), genai.Text(prompt), gcfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}
	return ParseResults(resp.Text())
}
