package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel     = "claude-3-5-haiku-latest"
	defaultAnthropicMaxTokens = 4096
)

type anthropicProvider struct {
	client anthropic.Client
	opts   callOptions
}

func newAnthropicProvider(apiKey, baseURL string, hc *http.Client, opts callOptions) *anthropicProvider {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(hc),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	return &anthropicProvider{client: anthropic.NewClient(reqOpts...), opts: opts}
}

func (p *anthropicProvider) GenerateValues(ctx context.Context, req Request) ([]Result, error) {
	prompt, err := BuildUserPrompt(req)
	if err != nil {
		return nil, err
	}

	maxTokens := p.opts.maxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.opts.modelOr(defaultAnthropicModel)),
		MaxTokens: maxTokens,
		System:    []anthropic.TextBlockParam{{Text: SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Temperature: anthropic.Float(p.opts.temperature),
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return ParseResults(text.String())
}
