package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-dashboard/internal/api/http/handlers"
	"github.com/spec-kit/support-dashboard/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Session        *handlers.SessionHandler
	Tickets        *handlers.TicketsHandler
	Agent          *handlers.AgentHandler
	Connection     *handlers.ConnectionHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Session.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	tickets := protected.Group("/tickets")
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Post("/:id/process", cfg.Agent.ProcessTicket)
	tickets.Get("/:id/responses", cfg.Agent.ListResponses)
	tickets.Get("/:id/responses/latest", cfg.Agent.LatestResponse)

	connection := protected.Group("/connection")
	connection.Get("/status", cfg.Connection.Status)
	connection.Post("/check", cfg.Connection.Check)
	connection.Put("/config", cfg.Connection.Configure)
}
