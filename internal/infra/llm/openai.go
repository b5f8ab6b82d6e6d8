package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openAIProvider struct {
	client openai.Client
	opts   callOptions
}

func newOpenAIProvider(apiKey, baseURL string, hc *http.Client, opts callOptions) *openAIProvider {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(hc),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	return &openAIProvider{client: openai.NewClient(reqOpts...), opts: opts}
}

func (p *openAIProvider) GenerateValues(ctx context.Context, req Request) ([]Result, error) {
	prompt, err := BuildUserPrompt(req)
	if err != nil {
		return nil, err
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.opts.modelOr(defaultOpenAIModel)),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(p.opts.temperature),
	}
	if p.opts.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(p.opts.maxTokens)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	return ParseResults(resp.Choices[0].Message.Content)
}
