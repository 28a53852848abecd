package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/domain"
)

// Client talks to the intermediary backend service, which runs the five
// agents server-side and returns the merged sub-results in one response.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a backend client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Status is the backend's connectivity report.
type Status struct {
	Status            string `json:"status"`
	OllamaConnected   bool   `json:"ollama_connected"`
	HistoricalTickets int    `json:"historical_tickets"`
	Conversations     int    `json:"conversations"`
}

// CheckStatus verifies the backend is reachable via /status.
func (c *Client) CheckStatus(ctx context.Context) (*Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection to backend at %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned %d", resp.StatusCode)
	}
	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &status, nil
}

type processRequest struct {
	Ticket domain.Ticket `json:"ticket"`
	Model  string        `json:"model"`
}

// ProcessResult carries the sub-results the backend produced for a ticket.
// The shapes match the direct-mode agent contracts, so the orchestrator
// merges them identically.
type ProcessResult struct {
	Summary         *domain.AgentSummary        `json:"summary,omitempty"`
	Actions         *domain.AgentAction         `json:"actions,omitempty"`
	Routing         *domain.AgentRouting        `json:"routing,omitempty"`
	Recommendations *domain.AgentRecommendation `json:"recommendations,omitempty"`
	TimeEstimation  *domain.AgentTimeEstimation `json:"timeEstimation,omitempty"`
}

// ProcessTicket posts the ticket for server-side analysis. A non-2xx reply
// is an error for the orchestration caller, unlike direct-mode agent
// failures which resolve to fallbacks.
func (c *Client) ProcessTicket(ctx context.Context, ticket domain.Ticket, model string) (*ProcessResult, error) {
	body, err := json.Marshal(processRequest{Ticket: ticket, Model: model})
	if err != nil {
		return nil, fmt.Errorf("encode process request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process-ticket", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection to backend at %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("backend API error: %d", resp.StatusCode)
	}

	var result ProcessResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode process response: %w", err)
	}
	return &result, nil
}

// FetchTickets retrieves the backend's ticket list, used at startup to
// replace the built-in samples when the backend is reachable.
func (c *Client) FetchTickets(ctx context.Context) ([]domain.Ticket, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tickets", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection to backend at %s failed: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned %d", resp.StatusCode)
	}
	var tickets []domain.Ticket
	if err := json.NewDecoder(resp.Body).Decode(&tickets); err != nil {
		return nil, fmt.Errorf("decode tickets response: %w", err)
	}
	return tickets, nil
}
