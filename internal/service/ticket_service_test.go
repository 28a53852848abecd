package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/support-dashboard/internal/domain"
	"github.com/spec-kit/support-dashboard/internal/events"
	"github.com/spec-kit/support-dashboard/internal/store"
	apperrors "github.com/spec-kit/support-dashboard/pkg/util/errorutil"
)

type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func TestCreateTicket(t *testing.T) {
	dispatcher := &captureDispatcher{}
	svc := NewTicketService(store.NewTicketStore(), dispatcher)

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Subject:       "  Cannot login  ",
		Description:   "invalid credentials",
		CustomerName:  "Alex",
		CustomerEmail: "alex@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Cannot login", ticket.Subject)
	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
	assert.NotEmpty(t, ticket.ID)
	assert.True(t, len(ticket.ID) > 2 && ticket.ID[:2] == "T-")
	assert.False(t, ticket.CreatedAt.IsZero())

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, events.EventTicketCreated, dispatcher.events[0].Type)
	assert.Equal(t, ticket.ID, dispatcher.events[0].TicketID)
}

func TestCreateTicketValidation(t *testing.T) {
	svc := NewTicketService(store.NewTicketStore(), nil)

	_, err := svc.CreateTicket(context.Background(), TicketCreateInput{Subject: "", Description: "x"})
	require.Error(t, err)

	_, err = svc.CreateTicket(context.Background(), TicketCreateInput{Subject: "x", Description: "   "})
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestGetTicketWithResponses(t *testing.T) {
	ticketStore := store.NewTicketStore()
	ticketStore.PutTicket(domain.Ticket{ID: "T001", Subject: "s", Description: "d", CreatedAt: time.Now(), Status: domain.TicketStatusNew})
	ticketStore.AppendResponse(domain.AgentResponse{ID: "resp-1", TicketID: "T001", Timestamp: time.Now()})
	svc := NewTicketService(ticketStore, nil)

	ticket, responses, err := svc.GetTicket(context.Background(), "T001")
	require.NoError(t, err)
	assert.Equal(t, "T001", ticket.ID)
	require.Len(t, responses, 1)
	assert.Equal(t, "resp-1", responses[0].ID)

	_, _, err = svc.GetTicket(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateStatus(t *testing.T) {
	ticketStore := store.NewTicketStore()
	ticketStore.PutTicket(domain.Ticket{ID: "T001", Subject: "s", Description: "d", CreatedAt: time.Now(), Status: domain.TicketStatusInProgress})
	dispatcher := &captureDispatcher{}
	svc := NewTicketService(ticketStore, dispatcher)

	ticket, err := svc.UpdateStatus(context.Background(), "T001", domain.TicketStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, ticket.Status)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, events.EventTicketStatusChanged, dispatcher.events[0].Type)
	payload, ok := dispatcher.events[0].Payload.(events.TicketStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.TicketStatusInProgress, payload.OldStatus)
	assert.Equal(t, domain.TicketStatusResolved, payload.NewStatus)
}

func TestUpdateStatusNoEventWhenUnchanged(t *testing.T) {
	ticketStore := store.NewTicketStore()
	ticketStore.PutTicket(domain.Ticket{ID: "T001", Subject: "s", Description: "d", CreatedAt: time.Now(), Status: domain.TicketStatusNew})
	dispatcher := &captureDispatcher{}
	svc := NewTicketService(ticketStore, dispatcher)

	_, err := svc.UpdateStatus(context.Background(), "T001", domain.TicketStatusNew)
	require.NoError(t, err)
	assert.Empty(t, dispatcher.events)
}

func TestUpdateStatusRejectsUnknownState(t *testing.T) {
	ticketStore := store.NewTicketStore()
	ticketStore.PutTicket(domain.Ticket{ID: "T001", Subject: "s", Description: "d", CreatedAt: time.Now(), Status: domain.TicketStatusNew})
	svc := NewTicketService(ticketStore, nil)

	_, err := svc.UpdateStatus(context.Background(), "T001", domain.TicketStatus("archived"))
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)

	stored, getErr := ticketStore.GetTicket("T001")
	require.NoError(t, getErr)
	assert.Equal(t, domain.TicketStatusNew, stored.Status)
}

func TestUpdateStatusUnknownTicket(t *testing.T) {
	svc := NewTicketService(store.NewTicketStore(), nil)

	_, err := svc.UpdateStatus(context.Background(), "missing", domain.TicketStatusClosed)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListTickets(t *testing.T) {
	ticketStore := store.NewTicketStore()
	for _, ticket := range store.SeedTickets(time.Now()) {
		ticketStore.PutTicket(ticket)
	}
	svc := NewTicketService(ticketStore, nil)

	list := svc.ListTickets(context.Background())
	require.Len(t, list, 5)
	assert.Equal(t, "T001", list[0].ID)
}
