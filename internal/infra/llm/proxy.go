package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// ProxyClient forwards requests to the AI endpoint of another unidash
// instance, which holds the provider key.
type ProxyClient struct {
	URL        string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewProxyClient(url string, hc *http.Client, log *zap.Logger) *ProxyClient {
	return &ProxyClient{URL: url, HTTPClient: hc, Logger: log}
}

// proxyEnvelope matches the JSON envelope the AI endpoint answers with.
type proxyEnvelope struct {
	Code int      `json:"code"`
	Data []Result `json:"data"`
	Msg  string   `json:"msg"`
}

func (c *ProxyClient) GenerateValues(ctx context.Context, req Request) ([]Result, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.Logger.Error("ai proxy request failed",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return nil, fmt.Errorf("ai proxy request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	trimmed := bytes.TrimSpace(respBody)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env proxyEnvelope
		if err := sonic.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("unmarshal response: %w", err)
		}
		if env.Data != nil {
			return clampAll(env.Data), nil
		}
	}
	return ParseResults(string(trimmed))
}

func clampAll(rs []Result) []Result {
	for i := range rs {
		rs[i].Confidence = ClampConfidence(rs[i].Confidence)
	}
	return rs
}
