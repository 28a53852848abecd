package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zap.NewNop())
}

func TestCheckStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/status", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Status{
			Status:            "ok",
			OllamaConnected:   true,
			HistoricalTickets: 16,
			Conversations:     5,
		})
	})

	status, err := client.CheckStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.True(t, status.OllamaConnected)
	assert.Equal(t, 16, status.HistoricalTickets)
}

func TestCheckStatusNonOK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.CheckStatus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestProcessTicketSendsWireContract(t *testing.T) {
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/process-ticket", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(ProcessResult{
			Summary: &domain.AgentSummary{Summary: "done", Sentiment: domain.SentimentNeutral},
			TimeEstimation: &domain.AgentTimeEstimation{
				EstimatedMinutes: 45,
				Confidence:       0.6,
			},
		})
	})

	ticket := domain.Ticket{
		ID:            "T001",
		Subject:       "Cannot login",
		CustomerEmail: "a@example.com",
		CreatedAt:     time.Now(),
		Status:        domain.TicketStatusNew,
	}
	result, err := client.ProcessTicket(context.Background(), ticket, "llama3")
	require.NoError(t, err)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "done", result.Summary.Summary)
	require.NotNil(t, result.TimeEstimation)
	assert.Equal(t, 45, result.TimeEstimation.EstimatedMinutes)
	assert.Nil(t, result.Routing)

	assert.Equal(t, "llama3", gotBody["model"])
	wireTicket, ok := gotBody["ticket"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "T001", wireTicket["id"])
	assert.Equal(t, "a@example.com", wireTicket["customerEmail"])
}

func TestProcessTicketNonSuccessStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.ProcessTicket(context.Background(), domain.Ticket{ID: "T001"}, "llama3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend API error: 500")
}

func TestProcessTicketAccepts201(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(ProcessResult{})
	})

	_, err := client.ProcessTicket(context.Background(), domain.Ticket{ID: "T001"}, "llama3")
	assert.NoError(t, err)
}

func TestFetchTickets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tickets", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]domain.Ticket{
			{ID: "B1", Subject: "first", Status: domain.TicketStatusNew},
			{ID: "B2", Subject: "second", Status: domain.TicketStatusResolved},
		})
	})

	tickets, err := client.FetchTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, tickets, 2)
	assert.Equal(t, "B1", tickets[0].ID)
	assert.Equal(t, domain.TicketStatusResolved, tickets[1].Status)
}

func TestFetchTicketsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, time.Second, zap.NewNop())

	_, err := client.FetchTickets(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection to backend")
}
