package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in-progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// Priority grades the urgency of a ticket or an extracted action.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Ticket is the aggregate for customer support requests. The JSON field
// names are the wire contract shared with the backend service's /tickets
// and /process-ticket endpoints.
type Ticket struct {
	ID                  string       `json:"id"`
	Subject             string       `json:"subject"`
	Description         string       `json:"description"`
	CustomerName        string       `json:"customerName"`
	CustomerEmail       string       `json:"customerEmail"`
	CreatedAt           time.Time    `json:"createdAt"`
	Status              TicketStatus `json:"status"`
	Priority            Priority     `json:"priority,omitempty"`
	AssignedTo          string       `json:"assignedTo,omitempty"`
	EstimatedResolution *time.Time   `json:"estimatedResolution,omitempty"`
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}
