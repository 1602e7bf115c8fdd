package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Admin          *handlers.AdminHandler
	Manage         *handlers.ManageHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	authGroup := app.Group("/auth")
	authGroup.Post("/users/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	// Groups share the root prefix, so the role checks are attached per route.
	user := []fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireUser()}
	app.Post("/tickets", with(user, cfg.Tickets.CreateTicket)...)
	app.Get("/tickets", with(user, cfg.Tickets.ListTickets)...)
	app.Get("/tickets/:id", with(user, cfg.Tickets.GetTicket)...)
	app.Post("/tickets/:id/responses", with(user, cfg.Tickets.AddResponse)...)
	app.Get("/tickets/:id/responses", with(user, cfg.Tickets.ListResponses)...)
	app.Post("/tickets/:id/close", with(user, cfg.Tickets.CloseTicket)...)
	app.Post("/tickets/:id/drop", with(user, cfg.Tickets.DropTicket)...)
	app.Post("/tickets/:id/feedback", with(user, cfg.Tickets.AddFeedback)...)
	app.Get("/me/summary", with(user, cfg.Tickets.Summary)...)
	app.Get("/me/notifications", with(user, cfg.Notifications.List)...)
	app.Put("/me/notifications/read", with(user, cfg.Notifications.MarkAllRead)...)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/tickets", cfg.Admin.ListTickets)
	admin.Get("/tickets/:id", cfg.Admin.GetTicket)
	admin.Put("/tickets/:id/status", cfg.Admin.UpdateStatus)
	admin.Post("/tickets/:id/responses", cfg.Admin.AddResponse)
	admin.Get("/tickets/:id/responses", cfg.Admin.ListResponses)
	admin.Get("/summary", cfg.Admin.Summary)
	admin.Get("/statuses", cfg.Admin.Statuses)
	admin.Get("/notifications", cfg.Notifications.List)
	admin.Put("/notifications/read", cfg.Notifications.MarkAllRead)

	manage := app.Group("/manage", cfg.AuthMiddleware.Handle, auth.RequireSuperAdmin())
	manage.Get("/summary", cfg.Manage.Summary)
	manage.Get("/tickets", cfg.Manage.ListTickets)
	manage.Get("/tickets/:id", cfg.Manage.GetTicket)
	manage.Put("/tickets/:id/assignment", cfg.Manage.Assign)
	manage.Put("/tickets/:id/severity", cfg.Manage.SetSeverity)
	manage.Get("/departments", cfg.Manage.Departments)
	manage.Get("/departments/:id/admins", cfg.Manage.DepartmentAdmins)
	manage.Get("/severity-levels", cfg.Manage.SeverityLevels)
	manage.Get("/progress", cfg.Manage.Progress)
	manage.Post("/progress/notify", cfg.Manage.NotifyAdmin)
}

func with(chain []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(chain)+1)
	out = append(out, chain...)
	return append(out, handler)
}
