package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-dashboard/internal/api/dto"
	"github.com/spec-kit/support-dashboard/internal/auth"
	apperrors "github.com/spec-kit/support-dashboard/pkg/util/errorutil"
)

// SessionHandler implements the mock login. Dashboard sessions are not a
// security boundary; the demo operator directory is the entire user base.
type SessionHandler struct {
	operators *auth.OperatorDirectory
	tokens    *auth.TokenManager
}

// NewSessionHandler constructs handler.
func NewSessionHandler(operators *auth.OperatorDirectory, tokens *auth.TokenManager) *SessionHandler {
	return &SessionHandler{operators: operators, tokens: tokens}
}

// Login POST /auth/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	operator, ok := h.operators.Authenticate(req.Email, req.Password)
	if !ok {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := h.tokens.GenerateToken(operator.ID, operator.Name)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Operator: dto.OperatorResponse{
			ID:    operator.ID,
			Name:  operator.Name,
			Email: operator.Email,
		},
	}})
}
