package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/api/http/handlers"
	"github.com/spec-kit/complaint-service/internal/app"
	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/observability"
)

// ServerDependencies is everything NewServer needs to build the Fiber app.
type ServerDependencies struct {
	App          config.AppConfig
	Services     *app.Services
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Dependencies map[string]handlers.Pinger
}

// NewServer builds a Fiber app with middlewares and every route registered.
func NewServer(deps ServerDependencies) *fiber.App {
	svc := deps.Services
	server := fiber.New(fiber.Config{
		AppName:               deps.App.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(server, deps.Logger, deps.Metrics, MiddlewareConfig{
		Timeout:          deps.App.RequestTimeout(),
		CORSAllowOrigins: deps.App.CORSAllowOrigins,
	})

	RegisterRoutes(server, RouteConfig{
		Health:  handlers.NewHealthHandler(deps.App.Name, deps.App.Version, deps.Dependencies),
		Metrics: handlers.NewMetricsHandler(deps.Metrics),
		Auth:    handlers.NewAuthHandler(svc.Auth),
		Tickets: handlers.NewTicketsHandler(svc.Tickets, svc.Responses, svc.Reports),
		Admin:   handlers.NewAdminHandler(svc.Tickets, svc.Responses, svc.Reports),
		Manage: handlers.NewManageHandler(handlers.ManageDependencies{
			Tickets:       svc.Tickets,
			Assignments:   svc.Assignments,
			Directory:     svc.Directory,
			Progress:      svc.Progress,
			Reports:       svc.Reports,
			Notifications: svc.Notifications,
		}),
		Notifications:  handlers.NewNotificationsHandler(svc.Notifications),
		AuthMiddleware: auth.NewAuthMiddleware(svc.Auth.TokenManager(), svc.Store.Users, svc.Store.Admins),
	})
	return server
}
