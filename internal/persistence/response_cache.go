package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spec-kit/support-dashboard/internal/domain"
)

const responseCacheTTL = 24 * time.Hour

// ResponseCache keeps the latest complete agent response per ticket in
// Redis so dashboard consumers can read it without touching the in-memory
// store. Writes are best-effort; a cache failure never fails an
// orchestration.
type ResponseCache struct {
	redis *Redis
}

// NewResponseCache builds a cache over the given Redis wrapper. Returns nil
// when Redis is not configured.
func NewResponseCache(r *Redis) *ResponseCache {
	if r == nil || r.Client == nil {
		return nil
	}
	return &ResponseCache{redis: r}
}

func responseKey(ticketID string) string {
	return "agentresponse:latest:" + ticketID
}

// StoreLatest overwrites the cached response for the ticket.
func (c *ResponseCache) StoreLatest(ctx context.Context, resp domain.AgentResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return c.redis.Client.Set(ctx, responseKey(resp.TicketID), payload, responseCacheTTL).Err()
}

// Latest returns the cached response for a ticket, if any.
func (c *ResponseCache) Latest(ctx context.Context, ticketID string) (*domain.AgentResponse, error) {
	payload, err := c.redis.Client.Get(ctx, responseKey(ticketID)).Bytes()
	if err != nil {
		return nil, err
	}
	var resp domain.AgentResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("decode cached response: %w", err)
	}
	return &resp, nil
}
