package events

import (
	"time"

	"github.com/spec-kit/support-dashboard/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated           EventType = "ticket_created"
	EventTicketStatusChanged     EventType = "ticket_status_changed"
	EventTicketProcessingStarted EventType = "ticket_processing_started"
	EventTicketProcessed         EventType = "ticket_processed"
	EventTicketProcessingFailed  EventType = "ticket_processing_failed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Subject       string `json:"subject"`
	CustomerEmail string `json:"customer_email"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketProcessingStartedPayload payload.
type TicketProcessingStartedPayload struct {
	ResponseID string `json:"response_id"`
	Mode       string `json:"mode"`
}

// TicketProcessedPayload payload.
type TicketProcessedPayload struct {
	ResponseID          string              `json:"response_id"`
	Priority            domain.Priority     `json:"priority"`
	RecommendedTeam     domain.Team         `json:"recommended_team"`
	EstimatedResolution *time.Time          `json:"estimated_resolution,omitempty"`
	Status              domain.TicketStatus `json:"status"`
}

// TicketProcessingFailedPayload payload.
type TicketProcessingFailedPayload struct {
	ResponseID string `json:"response_id,omitempty"`
	Reason     string `json:"reason"`
}
