package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-dashboard/internal/api/dto"
	"github.com/spec-kit/support-dashboard/internal/service"
	apperrors "github.com/spec-kit/support-dashboard/pkg/util/errorutil"
)

// ConnectionHandler exposes model connectivity status and reconfiguration.
type ConnectionHandler struct {
	conn *service.ConnectionManager
}

// NewConnectionHandler constructs handler.
func NewConnectionHandler(conn *service.ConnectionManager) *ConnectionHandler {
	return &ConnectionHandler{conn: conn}
}

// Status GET /connection/status.
func (h *ConnectionHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.conn.State()})
}

// Check POST /connection/check re-probes the configured endpoint.
func (h *ConnectionHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.conn.Check(c.UserContext())})
}

// Configure PUT /connection/config.
func (h *ConnectionHandler) Configure(c *fiber.Ctx) error {
	var req dto.ConnectionConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BaseURL == "" || req.Model == "" || req.Mode == "" {
		return apperrors.NewValidationError("baseUrl, model, mode required", nil)
	}
	state, err := h.conn.Configure(c.UserContext(), req.BaseURL, req.Model, req.Mode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": state})
}
