package store

import (
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/support-dashboard/internal/domain"
	apperrors "github.com/spec-kit/support-dashboard/pkg/util/errorutil"
)

// TicketStore holds the dashboard's tickets and the append-only agent
// response log in memory. All mutation goes through whole-object
// replacement under one mutex; readers get copies. Two concurrent
// orchestration runs for the same ticket are allowed to race; the
// latest-appended response wins, there is no per-ticket lock.
type TicketStore struct {
	mu        sync.RWMutex
	tickets   map[string]domain.Ticket
	order     []string
	responses []domain.AgentResponse
}

// NewTicketStore creates an empty store.
func NewTicketStore() *TicketStore {
	return &TicketStore{tickets: make(map[string]domain.Ticket)}
}

// PutTicket inserts or replaces a ticket.
func (s *TicketStore) PutTicket(ticket domain.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tickets[ticket.ID]; !exists {
		s.order = append(s.order, ticket.ID)
	}
	s.tickets[ticket.ID] = ticket
}

// ReplaceAllTickets swaps the full ticket set, preserving input order.
// Used when the backend's ticket list supersedes the built-in samples.
func (s *TicketStore) ReplaceAllTickets(tickets []domain.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickets = make(map[string]domain.Ticket, len(tickets))
	s.order = s.order[:0]
	for _, t := range tickets {
		if _, exists := s.tickets[t.ID]; !exists {
			s.order = append(s.order, t.ID)
		}
		s.tickets[t.ID] = t
	}
}

// GetTicket returns a copy of the ticket with the given id.
func (s *TicketStore) GetTicket(id string) (domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return ticket, nil
}

// ListTickets returns all tickets in insertion order.
func (s *TicketStore) ListTickets() []domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Ticket, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.tickets[id])
	}
	return out
}

// UpdateTicket applies mutate to a copy of the ticket and stores the result
// as one sequenced write. The mutation sees a stable snapshot; concurrent
// updaters serialize on the store mutex, so derived fields written together
// in one call are never observed half-applied.
func (s *TicketStore) UpdateTicket(id string, mutate func(domain.Ticket) domain.Ticket) (domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return domain.Ticket{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	updated := mutate(ticket)
	updated.ID = ticket.ID
	updated.CreatedAt = ticket.CreatedAt
	s.tickets[id] = updated
	return updated, nil
}

// AppendResponse adds a response record to the log.
func (s *TicketStore) AppendResponse(resp domain.AgentResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, resp)
}

// ReplaceResponse swaps the record with the same id for the complete one.
// The id is stable across the pending and complete states of a run.
func (s *TicketStore) ReplaceResponse(resp domain.AgentResponse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.responses {
		if s.responses[i].ID == resp.ID {
			s.responses[i] = resp
			return true
		}
	}
	return false
}

// ResponsesForTicket returns all responses for a ticket, oldest first.
func (s *TicketStore) ResponsesForTicket(ticketID string) []domain.AgentResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.AgentResponse{}
	for _, resp := range s.responses {
		if resp.TicketID == ticketID {
			out = append(out, resp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// LatestResponseForTicket returns the most recently appended response for a
// ticket. Older responses are retained as history but are not authoritative.
func (s *TicketStore) LatestResponseForTicket(ticketID string) (domain.AgentResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.responses) - 1; i >= 0; i-- {
		if s.responses[i].TicketID == ticketID {
			return s.responses[i], true
		}
	}
	return domain.AgentResponse{}, false
}

// SeedTickets returns the built-in sample ticket set used until the backend
// ticket list is available.
func SeedTickets(now time.Time) []domain.Ticket {
	return []domain.Ticket{
		{
			ID:            "T001",
			Subject:       "Cannot login to my account",
			Description:   "I've been trying to login to my account for the past hour but keep getting 'invalid credentials'.",
			CustomerName:  "Alex Johnson",
			CustomerEmail: "alex.johnson@example.com",
			CreatedAt:     now.Add(-2 * time.Hour),
			Status:        domain.TicketStatusNew,
		},
		{
			ID:            "T002",
			Subject:       "Billing issue with my recent purchase",
			Description:   "I was charged twice for my subscription renewal last week.",
			CustomerName:  "Sarah Miller",
			CustomerEmail: "sarah.miller@example.com",
			CreatedAt:     now.Add(-6 * time.Hour),
			Status:        domain.TicketStatusResolved,
		},
		{
			ID:            "T003",
			Subject:       "Product feature request",
			Description:   "I think it would be much better if you could add a dark mode option.",
			CustomerName:  "Miguel Rodriguez",
			CustomerEmail: "miguel.r@example.com",
			CreatedAt:     now.Add(-24 * time.Hour),
			Status:        domain.TicketStatusNew,
		},
		{
			ID:            "T004",
			Subject:       "Software installation issue",
			Description:   "The software installation fails at 75% with an unknown error.",
			CustomerName:  "Emily Davis",
			CustomerEmail: "emily.davis@example.com",
			CreatedAt:     now.Add(-48 * time.Hour),
			Status:        domain.TicketStatusNew,
		},
		{
			ID:            "T005",
			Subject:       "Account synchronization problem",
			Description:   "My project data isn't syncing between my laptop and tablet.",
			CustomerName:  "John Smith",
			CustomerEmail: "john.smith@example.com",
			CreatedAt:     now.Add(-72 * time.Hour),
			Status:        domain.TicketStatusResolved,
		},
	}
}
