package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/config"
)

// Client is the single point of contact with an Ollama text-completion
// server. It issues exactly one request per completion: no retries, no
// queueing. Transport failures are returned as ordinary errors; the agent
// layer folds them into its fallback path so they never surface as an
// orchestration failure.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a gateway client from model configuration.
func NewClient(cfg config.ModelConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Complete sends one prompt to the model and returns the raw reply text.
func (c *Client) Complete(ctx context.Context, prompt, systemPrompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		System: systemPrompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encode generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending prompt to model",
		zap.String("model", c.model),
		zap.Int("prompt_len", len(prompt)))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("connection to model server at %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("model server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return parsed.Response, nil
}

// ModelInfo describes one model reported by the server.
type ModelInfo struct {
	Name string `json:"name"`
}

type tagsResponse struct {
	Models []ModelInfo `json:"models"`
}

// ConnectionStatus is the result of a connectivity check.
type ConnectionStatus struct {
	Connected  bool
	Models     []ModelInfo
	ModelFound bool
}

// CheckConnection verifies the server is reachable via /api/tags and
// reports whether the configured model is available.
func (c *Client) CheckConnection(ctx context.Context) (*ConnectionStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection to model server at %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model server returned %d", resp.StatusCode)
	}

	var parsed tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode tags response: %w", err)
	}

	status := &ConnectionStatus{Connected: true, Models: parsed.Models}
	for _, m := range parsed.Models {
		if m.Name == c.model || strings.HasPrefix(m.Name, c.model+":") {
			status.ModelFound = true
			break
		}
	}
	return status, nil
}
