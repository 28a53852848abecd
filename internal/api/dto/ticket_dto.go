package dto

import (
	"time"

	"github.com/spec-kit/support-dashboard/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject       string `json:"subject"`
	Description   string `json:"description"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// TicketDetailResponse returns a ticket with its processing history. Latest
// is the authoritative response; older entries are retained history.
type TicketDetailResponse struct {
	Ticket    domain.Ticket          `json:"ticket"`
	Responses []domain.AgentResponse `json:"responses"`
	Latest    *domain.AgentResponse  `json:"latestResponse,omitempty"`
}

// LoginRequest payload for the mock session.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	Operator  OperatorResponse `json:"operator"`
}

// OperatorResponse identifies the logged-in operator.
type OperatorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ConnectionConfigRequest payload for switching model connection settings.
type ConnectionConfigRequest struct {
	BaseURL string `json:"baseUrl"`
	Model   string `json:"model"`
	Mode    string `json:"mode"`
}
