package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/backend"
	"github.com/spec-kit/support-dashboard/internal/config"
	"github.com/spec-kit/support-dashboard/internal/domain"
	"github.com/spec-kit/support-dashboard/internal/llm"
	apperrors "github.com/spec-kit/support-dashboard/pkg/util/errorutil"
)

// Connectivity states surfaced to the dashboard. Transport failures show
// up here, never as orchestration failures.
const (
	StatusDisconnected = "disconnected"
	StatusConnected    = "connected"
	StatusError        = "error"
)

// ConnectionState is the connectivity snapshot reported to clients.
type ConnectionState struct {
	Status     string          `json:"status"`
	BaseURL    string          `json:"baseUrl"`
	Model      string          `json:"model"`
	Mode       string          `json:"mode"`
	Models     []llm.ModelInfo `json:"models,omitempty"`
	ModelFound bool            `json:"modelFound"`
	Message    string          `json:"message,omitempty"`
}

// ConnectionManager owns the current model connection configuration and the
// clients built from it. Reconfiguring swaps both clients and re-runs the
// connectivity check; the orchestrator reads the current mode, model and
// clients through it so a runtime switch takes effect on the next run.
type ConnectionManager struct {
	mu      sync.RWMutex
	cfg     config.ModelConfig
	state   ConnectionState
	client  *llm.Client
	backend *backend.Client
	logger  *zap.Logger
}

// NewConnectionManager builds clients for the initial configuration. The
// status starts as disconnected until the first check runs.
func NewConnectionManager(cfg config.ModelConfig, logger *zap.Logger) *ConnectionManager {
	cfg = cfg.Normalized()
	return &ConnectionManager{
		cfg:     cfg,
		state:   stateFor(cfg, StatusDisconnected, ""),
		client:  llm.NewClient(cfg, logger),
		backend: backend.NewClient(cfg.BaseURL, cfg.Timeout(), logger),
		logger:  logger,
	}
}

func stateFor(cfg config.ModelConfig, status, message string) ConnectionState {
	return ConnectionState{
		Status:  status,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Mode:    cfg.Mode,
		Message: message,
	}
}

// Configure applies a new base URL, model and mode, correcting the base URL
// when it still points at the other mode's default, then re-checks
// connectivity.
func (m *ConnectionManager) Configure(ctx context.Context, baseURL, model, mode string) (ConnectionState, error) {
	if mode != config.ModeDirect && mode != config.ModeBackend {
		return ConnectionState{}, apperrors.NewValidationError("unknown connection mode", map[string]any{"mode": mode})
	}

	m.mu.Lock()
	cfg := m.cfg
	cfg.BaseURL = baseURL
	cfg.Model = model
	cfg.Mode = mode
	cfg = cfg.Normalized()
	m.cfg = cfg
	m.client = llm.NewClient(cfg, m.logger)
	m.backend = backend.NewClient(cfg.BaseURL, cfg.Timeout(), m.logger)
	m.mu.Unlock()

	m.logger.Info("connection reconfigured",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
		zap.String("mode", cfg.Mode))
	return m.Check(ctx), nil
}

// Check probes the configured endpoint (/api/tags in direct mode, /status
// in backend mode) and records the result.
func (m *ConnectionManager) Check(ctx context.Context) ConnectionState {
	m.mu.RLock()
	cfg := m.cfg
	client := m.client
	backendClient := m.backend
	m.mu.RUnlock()

	var state ConnectionState
	if cfg.Mode == config.ModeBackend {
		if _, err := backendClient.CheckStatus(ctx); err != nil {
			state = stateFor(cfg, StatusError, err.Error())
		} else {
			state = stateFor(cfg, StatusConnected, "")
		}
	} else {
		status, err := client.CheckConnection(ctx)
		if err != nil {
			state = stateFor(cfg, StatusError, err.Error())
		} else {
			state = stateFor(cfg, StatusConnected, "")
			state.Models = status.Models
			state.ModelFound = status.ModelFound
		}
	}

	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
	return state
}

// State returns the last recorded connectivity snapshot.
func (m *ConnectionManager) State() ConnectionState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Mode returns the current connection mode.
func (m *ConnectionManager) Mode() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Mode
}

// Model returns the current model name.
func (m *ConnectionManager) Model() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Model
}

// Complete forwards to the current gateway client, satisfying the agent
// layer's Gateway interface.
func (m *ConnectionManager) Complete(ctx context.Context, prompt, systemPrompt string) (string, error) {
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()
	return client.Complete(ctx, prompt, systemPrompt)
}

// ProcessTicket forwards to the current backend client, satisfying the
// orchestrator's BackendProcessor interface.
func (m *ConnectionManager) ProcessTicket(ctx context.Context, ticket domain.Ticket, model string) (*backend.ProcessResult, error) {
	m.mu.RLock()
	backendClient := m.backend
	m.mu.RUnlock()
	return backendClient.ProcessTicket(ctx, ticket, model)
}

// FetchTickets forwards to the current backend client.
func (m *ConnectionManager) FetchTickets(ctx context.Context) ([]domain.Ticket, error) {
	m.mu.RLock()
	backendClient := m.backend
	m.mu.RUnlock()
	return backendClient.FetchTickets(ctx)
}
