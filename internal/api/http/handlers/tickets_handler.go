package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-dashboard/internal/api/dto"
	"github.com/spec-kit/support-dashboard/internal/service"
	"github.com/spec-kit/support-dashboard/internal/store"
	apperrors "github.com/spec-kit/support-dashboard/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
	store   *store.TicketStore
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, ticketStore *store.TicketStore) *TicketsHandler {
	return &TicketsHandler{service: ticketService, store: ticketStore}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		Subject:       req.Subject,
		Description:   req.Description,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticket})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets := h.service.ListTickets(c.UserContext())
	return c.JSON(fiber.Map{"data": tickets})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, responses, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	detail := dto.TicketDetailResponse{Ticket: *ticket, Responses: responses}
	if latest, ok := h.store.LatestResponseForTicket(ticket.ID); ok {
		detail.Latest = &latest
	}
	return c.JSON(fiber.Map{"data": detail})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticket})
}
