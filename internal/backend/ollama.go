package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const ollamaMaxTokens = 512

// OllamaClient speaks the plain JSON generate contract: POST
// {model, prompt, max_tokens} and read back a text or response field.
type OllamaClient struct {
	url        string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOllamaClient(url, model string, timeout time.Duration, logger *zap.Logger) *OllamaClient {
	return &OllamaClient{
		url:        url,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Complete issues one synchronous generate request. The response shape is not
// guaranteed: a "text" field is preferred, then "response", and any other
// payload is returned stringified as-is.
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":      c.model,
		"prompt":     prompt,
		"max_tokens": ollamaMaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Provider: "ollama", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Provider: "ollama", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &Error{Provider: "ollama", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Provider: "ollama", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &Error{
			Provider: "ollama",
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))),
		}
	}

	var parsed struct {
		Text     string `json:"text"`
		Response string `json:"response"`
	}
	if err := json.Unmarshal(respBody, &parsed); err == nil {
		if parsed.Text != "" {
			return parsed.Text, nil
		}
		if parsed.Response != "" {
			return parsed.Response, nil
		}
	}

	c.logger.Debug("unexpected backend payload shape, returning raw body",
		zap.Int("length", len(respBody)),
	)
	return strings.TrimSpace(string(respBody)), nil
}
