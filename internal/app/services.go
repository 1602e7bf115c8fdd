package app

import (
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/lock"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/service"
)

// Services is the wired application layer shared by the API server and deskctl.
type Services struct {
	Store         repository.Store
	Dispatcher    events.Dispatcher
	Auth          *service.AuthService
	Tickets       *service.TicketService
	Assignments   *service.AssignmentService
	Responses     *service.ResponseService
	Progress      *service.ProgressService
	Notifications *service.NotificationService
	Reports       *service.ReportService
	Directory     *service.DirectoryService
}

// NewServices builds every service over one store, locker and dispatcher.
// Notification handlers are not registered; callers start the notification
// worker when they want event-driven notifications.
func NewServices(cfg config.Config, store repository.Store, locker lock.TicketLocker, logger *zap.Logger, metrics *observability.Metrics) *Services {
	dispatcher := events.NewInMemoryDispatcher()
	timeout := cfg.Store.Timeout()

	return &Services{
		Store:      store,
		Dispatcher: dispatcher,
		Auth:       service.NewAuthService(cfg, service.AuthDependencies{UserRepo: store.Users, AdminRepo: store.Admins}),
		Tickets: service.NewTicketService(service.TicketDependencies{
			Store: store, Locker: locker, Dispatcher: dispatcher, Logger: logger, StoreTimeout: timeout,
		}),
		Assignments: service.NewAssignmentService(service.AssignmentDependencies{
			Store: store, Locker: locker, Dispatcher: dispatcher, Logger: logger, StoreTimeout: timeout,
		}),
		Responses: service.NewResponseService(service.ResponseDependencies{
			Store: store, Locker: locker, Dispatcher: dispatcher, Logger: logger, StoreTimeout: timeout,
		}),
		Progress: service.NewProgressService(service.ProgressDependencies{Store: store, Logger: logger, StoreTimeout: timeout}),
		Notifications: service.NewNotificationService(service.NotificationDependencies{
			Store: store, Dispatcher: dispatcher, Logger: logger, Metrics: metrics, Config: cfg.Notification, StoreTimeout: timeout,
		}),
		Reports: service.NewReportService(store.Tickets, timeout),
		Directory: service.NewDirectoryService(cfg, service.OrgDependencies{
			DepartmentRepo: store.Departments, SeverityRepo: store.Severities, AdminRepo: store.Admins,
		}),
	}
}
