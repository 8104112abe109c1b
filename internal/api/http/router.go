package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/api/http/handlers"
	"github.com/mustafashaheen1/ai-support-dashboard/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Analyze        *handlers.AnalyzeHandler
	Stream         *handlers.StreamHandler
	Agents         *handlers.AgentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/agents/register", cfg.Agents.Register)
	authGroup.Post("/agents/login", cfg.Agents.Login)
	authGroup.Post("/password/reset/request", cfg.Agents.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Agents.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Agents.ChangePassword)

	api := app.Group("/api")
	// Submission and analysis stay open so the public contact form works
	// without an agent session.
	api.Post("/analyze-ticket", cfg.Analyze.Analyze)
	api.Post("/tickets", cfg.Tickets.CreateTicket)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/tickets/search", cfg.Tickets.SearchTickets)
	protected.Get("/tickets/export", cfg.Tickets.ExportCSV)
	protected.Get("/tickets/stream", cfg.Stream.Stream)
	protected.Post("/tickets/seed-demo", cfg.Tickets.SeedDemoTickets)
	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Get("/tickets/:id", cfg.Tickets.GetTicket)
	protected.Patch("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	protected.Post("/tickets/:id/responses", cfg.Tickets.SendResponse)
	protected.Get("/analytics", cfg.Tickets.Analytics)
	protected.Get("/preferences/theme", cfg.Agents.GetTheme)
	protected.Put("/preferences/theme", cfg.Agents.SetTheme)
}
