package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/lock"
	"github.com/spec-kit/complaint-service/internal/observability"
	"github.com/spec-kit/complaint-service/internal/persistence"
	"github.com/spec-kit/complaint-service/internal/repository"
	"github.com/spec-kit/complaint-service/internal/repository/gormstore"
)

type testEnv struct {
	sqlite        *persistence.SQLite
	store         repository.Store
	metrics       *observability.Metrics
	tickets       *TicketService
	assignments   *AssignmentService
	responses     *ResponseService
	progress      *ProgressService
	notifications *NotificationService
	reports       *ReportService
	auth          *AuthService
	directory     *DirectoryService

	department domain.Department
	super      *domain.Administrator
	admin      *domain.Administrator
	owner      *domain.User
}

func newTestEnv(t *testing.T, notifyCfg config.NotificationConfig) *testEnv {
	t.Helper()
	db, err := persistence.NewSQLite(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "service.sqlite")}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	t.Cleanup(db.Close)

	cfg := config.Config{
		Store: config.StoreConfig{TimeoutSeconds: 5},
		Auth:  config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: 4},
	}
	store := gormstore.NewStore(db.DB)
	dispatcher := events.NewInMemoryDispatcher()
	locker := lock.NewMemoryLocker()
	logger := zap.NewNop()
	timeout := cfg.Store.Timeout()

	env := &testEnv{
		sqlite:  db,
		store:   store,
		metrics: observability.NewMetrics(),
		tickets: NewTicketService(TicketDependencies{
			Store: store, Locker: locker, Dispatcher: dispatcher, Logger: logger, StoreTimeout: timeout,
		}),
		assignments: NewAssignmentService(AssignmentDependencies{
			Store: store, Locker: locker, Dispatcher: dispatcher, Logger: logger, StoreTimeout: timeout,
		}),
		responses: NewResponseService(ResponseDependencies{
			Store: store, Locker: locker, Dispatcher: dispatcher, Logger: logger, StoreTimeout: timeout,
		}),
		progress: NewProgressService(ProgressDependencies{Store: store, Logger: logger, StoreTimeout: timeout}),
		reports:  NewReportService(store.Tickets, timeout),
		auth:     NewAuthService(cfg, AuthDependencies{UserRepo: store.Users, AdminRepo: store.Admins}),
		directory: NewDirectoryService(cfg, OrgDependencies{
			DepartmentRepo: store.Departments, SeverityRepo: store.Severities, AdminRepo: store.Admins,
		}),
	}
	env.notifications = NewNotificationService(NotificationDependencies{
		Store: store, Dispatcher: dispatcher, Logger: logger, Metrics: env.metrics, Config: notifyCfg, StoreTimeout: timeout,
	})
	env.notifications.RegisterHandlers()

	ctx := context.Background()
	dept, err := env.directory.SaveDepartment(ctx, 1, "Billing")
	if err != nil {
		t.Fatalf("SaveDepartment() error = %v", err)
	}
	env.department = *dept
	env.super = env.mustAdmin(t, "Root", "root@example.com", domain.AdminRoleSuper)
	env.admin = env.mustAdmin(t, "Sara", "sara@example.com", domain.AdminRoleNormal)

	reg, err := env.auth.RegisterUser(ctx, RegisterUserInput{Name: "Owner", Email: "owner@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("RegisterUser() error = %v", err)
	}
	env.owner = reg.User
	return env
}

func (e *testEnv) mustAdmin(t *testing.T, name, email string, role domain.AdminRole) *domain.Administrator {
	t.Helper()
	admin, err := e.directory.CreateAdministrator(context.Background(), CreateAdministratorInput{
		Name: name, Email: email, Password: "password1", Role: role, DepartmentID: e.department.ID,
	})
	if err != nil {
		t.Fatalf("CreateAdministrator(%s) error = %v", email, err)
	}
	return admin
}

func (e *testEnv) mustTicket(t *testing.T) *domain.Ticket {
	t.Helper()
	ticket, err := e.tickets.Create(context.Background(), e.owner.ID, CreateTicketInput{Title: "Broken invoice", Description: "Charged twice"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return ticket
}

func (e *testEnv) mustAssign(t *testing.T, ticketID, adminID int64) {
	t.Helper()
	if _, err := e.assignments.Assign(context.Background(), e.superActor(), ticketID, e.department.ID, adminID); err != nil {
		t.Fatalf("Assign() error = %v", err)
	}
}

func (e *testEnv) mustTransition(t *testing.T, ticketID int64, status domain.TicketStatus, reason string) {
	t.Helper()
	if _, err := e.tickets.Transition(context.Background(), e.adminActor(), ticketID, status, reason); err != nil {
		t.Fatalf("Transition(%s) error = %v", status, err)
	}
}

func (e *testEnv) superActor() domain.Actor {
	return domain.Actor{Type: domain.SubjectTypeAdmin, ID: e.super.ID}
}

func (e *testEnv) adminActor() domain.Actor {
	return domain.Actor{Type: domain.SubjectTypeAdmin, ID: e.admin.ID}
}

func (e *testEnv) ownerActor() domain.Actor {
	return domain.Actor{Type: domain.SubjectTypeUser, ID: e.owner.ID}
}

func expectCode(t *testing.T, err error, sentinel error) {
	t.Helper()
	if !errors.Is(err, sentinel) {
		t.Fatalf("error = %v, want %v", err, sentinel)
	}
}

func softDeleted() *time.Time {
	now := time.Now().UTC()
	return &now
}
