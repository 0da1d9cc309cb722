package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	SupportTickets *handlers.SupportTicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	client := app.Group("/tickets", cfg.AuthMiddleware.Handle, auth.RequireClient())
	client.Post("/", cfg.Tickets.CreateTicket)
	client.Get("/", cfg.Tickets.ListTickets)
	client.Get("/:id", cfg.Tickets.GetTicket)
	client.Post("/:id/comments", cfg.Tickets.AddComment)
	client.Post("/:id/cancel", cfg.Tickets.CancelTicket)
	client.Post("/:id/finish", cfg.Tickets.FinishTicket)

	support := app.Group("/support/tickets", cfg.AuthMiddleware.Handle, auth.RequireSupport())
	support.Get("/", cfg.SupportTickets.ListTickets)
	support.Get("/:id", cfg.SupportTickets.GetTicket)
	support.Post("/:id/comments", cfg.SupportTickets.AddComment)
	support.Post("/:id/assign", cfg.SupportTickets.AssignTicket)
	support.Post("/:id/cancel", cfg.SupportTickets.CancelTicket)
	support.Post("/:id/finish", cfg.SupportTickets.FinishTicket)
}
