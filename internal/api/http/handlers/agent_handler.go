package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-dashboard/internal/orchestrator"
	"github.com/spec-kit/support-dashboard/internal/store"
	apperrors "github.com/spec-kit/support-dashboard/pkg/util/errorutil"
)

// AgentHandler exposes ticket processing and the agent response log.
type AgentHandler struct {
	orchestrator *orchestrator.Orchestrator
	store        *store.TicketStore
}

// NewAgentHandler constructs handler.
func NewAgentHandler(o *orchestrator.Orchestrator, ticketStore *store.TicketStore) *AgentHandler {
	return &AgentHandler{orchestrator: o, store: ticketStore}
}

// ProcessTicket POST /tickets/:id/process.
func (h *AgentHandler) ProcessTicket(c *fiber.Ctx) error {
	resp, err := h.orchestrator.ProcessTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": resp})
}

// ListResponses GET /tickets/:id/responses.
func (h *AgentHandler) ListResponses(c *fiber.Ctx) error {
	ticketID := c.Params("id")
	if _, err := h.store.GetTicket(ticketID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.store.ResponsesForTicket(ticketID)})
}

// LatestResponse GET /tickets/:id/responses/latest.
func (h *AgentHandler) LatestResponse(c *fiber.Ctx) error {
	ticketID := c.Params("id")
	if _, err := h.store.GetTicket(ticketID); err != nil {
		return err
	}
	latest, ok := h.store.LatestResponseForTicket(ticketID)
	if !ok {
		return apperrors.NewNotFound("agent response", map[string]any{"ticket_id": ticketID})
	}
	return c.JSON(fiber.Map{"data": latest})
}
