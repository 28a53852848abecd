package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/support-dashboard/internal/domain"
	"github.com/spec-kit/support-dashboard/internal/events"
	"github.com/spec-kit/support-dashboard/internal/store"
	apperrors "github.com/spec-kit/support-dashboard/pkg/util/errorutil"
)

// TicketService coordinates ticket intake and manual status changes over
// the in-memory store. Agent-driven mutation lives in the orchestrator.
type TicketService struct {
	store      *store.TicketStore
	dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket intake payload.
type TicketCreateInput struct {
	Subject       string
	Description   string
	CustomerName  string
	CustomerEmail string
}

// NewTicketService constructs the service.
func NewTicketService(ticketStore *store.TicketStore, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{store: ticketStore, dispatcher: dispatcher}
}

// CreateTicket registers a new ticket with status "new".
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	subject := strings.TrimSpace(input.Subject)
	description := strings.TrimSpace(input.Description)
	if subject == "" || description == "" {
		return nil, apperrors.NewValidationError("subject and description required", nil)
	}

	ticket := domain.Ticket{
		ID:            generateTicketID(),
		Subject:       subject,
		Description:   description,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		CreatedAt:     time.Now(),
		Status:        domain.TicketStatusNew,
	}
	s.store.PutTicket(ticket)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Subject:       ticket.Subject,
			CustomerEmail: ticket.CustomerEmail,
		},
	})
	return &ticket, nil
}

// ListTickets returns all tickets in intake order.
func (s *TicketService) ListTickets(ctx context.Context) []domain.Ticket {
	return s.store.ListTickets()
}

// GetTicket returns one ticket with its response history, oldest first.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, []domain.AgentResponse, error) {
	ticket, err := s.store.GetTicket(ticketID)
	if err != nil {
		return nil, nil, err
	}
	return &ticket, s.store.ResponsesForTicket(ticketID), nil
}

// UpdateStatus sets the ticket status directly. The lifecycle is monotonic
// in normal flow, but operators may set any known state; resolving and
// closing are manual actions, never automatic.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": newStatus})
	}

	var oldStatus domain.TicketStatus
	ticket, err := s.store.UpdateTicket(ticketID, func(t domain.Ticket) domain.Ticket {
		oldStatus = t.Status
		t.Status = newStatus
		return t
	})
	if err != nil {
		return nil, err
	}

	if oldStatus != newStatus {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticketID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: newStatus,
			},
		})
	}
	return &ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateTicketID() string {
	return "T-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
