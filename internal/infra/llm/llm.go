package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/unidash/unidash/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var (
	// ErrNotConfigured is returned by every call when direct mode has no API key.
	ErrNotConfigured = errors.New("ai provider not configured")
	// ErrEmptyResponse means the model answered without any content.
	ErrEmptyResponse = errors.New("no content in ai response")
	// ErrInvalidRequest means the request carries no university name or no usable column.
	ErrInvalidRequest = errors.New("invalid ai request")
)

// University is the identity block sent to the model.
type University struct {
	Name    string  `json:"name"`
	Country *string `json:"country,omitempty"`
	State   *string `json:"state,omitempty"`
	City    *string `json:"city,omitempty"`
	Type    *string `json:"type,omitempty"`
	Website *string `json:"website,omitempty"`
}

// Column describes one value the model is asked to research.
type Column struct {
	Key            string  `json:"key"`
	Label          string  `json:"label"`
	Type           string  `json:"type"`
	Section        string  `json:"section,omitempty"`
	AIInstructions *string `json:"aiInstructions,omitempty"`
}

type Request struct {
	University University `json:"university"`
	Columns    []Column   `json:"columns"`
}

// Result is one researched value. Value keeps whatever JSON type the model
// produced; callers convert it to the column's storage form.
type Result struct {
	ColumnKey  string  `json:"columnKey"`
	Value      any     `json:"value"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	Notes      *string `json:"notes"`
}

// Provider produces values for a single university.
type Provider interface {
	GenerateValues(ctx context.Context, req Request) ([]Result, error)
}

// New returns the provider selected by cfg. The choice between direct and
// proxy mode is made once here.
func New(cfg config.AICfg, log *zap.Logger) (Provider, error) {
	hc := &http.Client{
		Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	if cfg.Mode == config.AIModeProxy {
		return NewProxyClient(cfg.ProxyURL, hc, log), nil
	}

	if cfg.APIKey == "" {
		log.Warn("ai api key not set, ai refresh will fail until it is configured", zap.String("provider", cfg.Provider))
		return unconfigured{}, nil
	}

	opts := callOptions{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   int64(cfg.MaxTokens),
	}
	switch cfg.Provider {
	case config.AIProviderOpenAI:
		return newOpenAIProvider(cfg.APIKey, cfg.BaseURL, hc, opts), nil
	case config.AIProviderAnthropic:
		return newAnthropicProvider(cfg.APIKey, cfg.BaseURL, hc, opts), nil
	case config.AIProviderGemini:
		return newGeminiProvider(context.Background(), cfg.APIKey, cfg.BaseURL, hc, opts)
	}
	return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
}

type callOptions struct {
	model       string
	temperature float64
	maxTokens   int64
}

func (o callOptions) modelOr(def string) string {
	if o.model == "" {
		return def
	}
	return o.model
}

type unconfigured struct{}

func (unconfigured) GenerateValues(context.Context, Request) ([]Result, error) {
	return nil, ErrNotConfigured
}
