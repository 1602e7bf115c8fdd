package gormstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

func newTestStore(t *testing.T) repository.Store {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open(filepath.Join(t.TempDir(), "store.sqlite")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return NewStore(db)
}

func TestTicketCreateStartsAboveFloor(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &domain.Ticket{Title: "a", Description: "x", OwnerID: 1, Status: domain.TicketStatusOpen, SeverityID: domain.SeverityLow}
	if err := store.Tickets.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second := &domain.Ticket{Title: "b", Description: "y", OwnerID: 1, Status: domain.TicketStatusOpen, SeverityID: domain.SeverityLow}
	if err := store.Tickets.Create(ctx, second); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.ID != 1521 || second.ID != 1522 {
		t.Fatalf("ids = %d, %d; want 1521, 1522", first.ID, second.ID)
	}
	if first.Version != 1 {
		t.Fatalf("Version = %d, want 1", first.Version)
	}
}

func TestTicketUpdateChecksVersion(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ticket := &domain.Ticket{Title: "t", Description: "d", OwnerID: 7, Status: domain.TicketStatusOpen, SeverityID: domain.SeverityLow}
	if err := store.Tickets.Create(ctx, ticket); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	stale := *ticket
	ticket.Status = domain.TicketStatusPending
	if err := store.Tickets.Update(ctx, ticket); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if ticket.Version != 2 {
		t.Fatalf("Version = %d, want 2", ticket.Version)
	}

	stale.Status = domain.TicketStatusResolved
	if err := store.Tickets.Update(ctx, &stale); !errors.Is(err, repository.ErrVersionConflict) {
		t.Fatalf("stale Update() error = %v, want ErrVersionConflict", err)
	}

	missing := domain.Ticket{ID: 99999, Version: 1, Status: domain.TicketStatusOpen}
	if err := store.Tickets.Update(ctx, &missing); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("missing Update() error = %v, want ErrNotFound", err)
	}

	got, err := store.Tickets.GetByID(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Status != domain.TicketStatusPending {
		t.Fatalf("Status = %s, want PENDING", got.Status)
	}
}

func TestTicketListAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	adminID := int64(3)
	for i, status := range []domain.TicketStatus{domain.TicketStatusOpen, domain.TicketStatusOpen, domain.TicketStatusClosed} {
		ticket := &domain.Ticket{Title: "t", Description: "d", OwnerID: 1, Status: status, SeverityID: domain.SeverityLow}
		if i < 2 {
			ticket.AdminID = &adminID
		}
		if err := store.Tickets.Create(ctx, ticket); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := store.Tickets.List(ctx, repository.TicketFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 || all[0].ID < all[2].ID {
		t.Fatalf("List() should return newest first, got %+v", all)
	}

	assigned, err := store.Tickets.List(ctx, repository.TicketFilter{AdminID: &adminID})
	if err != nil {
		t.Fatalf("List(admin) error = %v", err)
	}
	if len(assigned) != 2 {
		t.Fatalf("List(admin) = %d tickets, want 2", len(assigned))
	}

	counts, err := store.Tickets.CountByStatus(ctx, repository.TicketFilter{})
	if err != nil {
		t.Fatalf("CountByStatus() error = %v", err)
	}
	if counts[domain.TicketStatusOpen] != 2 || counts[domain.TicketStatusClosed] != 1 {
		t.Fatalf("CountByStatus() = %v", counts)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Tickets.GetByID(ctx, 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Tickets.GetByID() error = %v", err)
	}
	if _, err := store.Departments.GetByID(ctx, 42); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Departments.GetByID() error = %v", err)
	}
	if _, err := store.Users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("Users.GetByEmail() error = %v", err)
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Users.Create(ctx, &domain.User{Name: "a", Email: "a@example.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := store.Users.Create(ctx, &domain.User{Name: "b", Email: "a@example.com", PasswordHash: "h"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("duplicate Create() error = %v, want ErrDuplicate", err)
	}
}

func TestAdminListFilters(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	deleted := time.Now()
	admins := []domain.Administrator{
		{Name: "root", Email: "root@example.com", PasswordHash: "h", Role: domain.AdminRoleSuper, DepartmentID: 1},
		{Name: "a", Email: "a@example.com", PasswordHash: "h", Role: domain.AdminRoleNormal, DepartmentID: 1},
		{Name: "b", Email: "b@example.com", PasswordHash: "h", Role: domain.AdminRoleNormal, DepartmentID: 2},
		{Name: "gone", Email: "gone@example.com", PasswordHash: "h", Role: domain.AdminRoleNormal, DepartmentID: 1, DeletedAt: &deleted},
	}
	for i := range admins {
		if err := store.Admins.Create(ctx, &admins[i]); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	super := domain.AdminRoleSuper
	dept := int64(1)
	got, err := store.Admins.List(ctx, repository.AdminFilter{DepartmentID: &dept, ExcludeRole: &super})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "a" {
		t.Fatalf("List(dept 1, no super) = %+v", got)
	}

	withDeleted, err := store.Admins.List(ctx, repository.AdminFilter{IncludeDeleted: true})
	if err != nil {
		t.Fatalf("List(include deleted) error = %v", err)
	}
	if len(withDeleted) != 4 {
		t.Fatalf("List(include deleted) = %d, want 4", len(withDeleted))
	}
}

func TestNotificationsNewestFirstAndMarkAllRead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	target := domain.UserTarget(5)

	for _, title := range []string{"first", "second"} {
		if err := store.Notifications.Create(ctx, &domain.Notification{Target: target, Title: title, Message: "m"}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := store.Notifications.Create(ctx, &domain.Notification{Target: domain.AdminTarget(5), Title: "other", Message: "m"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	list, err := store.Notifications.ListByTarget(ctx, target)
	if err != nil {
		t.Fatalf("ListByTarget() error = %v", err)
	}
	if len(list) != 2 || list[0].Title != "second" {
		t.Fatalf("ListByTarget() = %+v", list)
	}

	changed, err := store.Notifications.MarkAllRead(ctx, target)
	if err != nil || changed != 2 {
		t.Fatalf("MarkAllRead() = %d, %v; want 2", changed, err)
	}
	changed, err = store.Notifications.MarkAllRead(ctx, target)
	if err != nil || changed != 0 {
		t.Fatalf("second MarkAllRead() = %d, %v; want 0", changed, err)
	}
	unread, err := store.Notifications.CountUnread(ctx, domain.AdminTarget(5))
	if err != nil || unread != 1 {
		t.Fatalf("CountUnread(admin) = %d, %v; want 1", unread, err)
	}
}

func TestFeedbackListByTickets(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, fb := range []domain.Feedback{
		{TicketID: 1, Sentiment: domain.SentimentGood},
		{TicketID: 2, Sentiment: domain.SentimentPoor},
		{TicketID: 3, Sentiment: domain.SentimentExcellent},
	} {
		fb := fb
		if err := store.Feedback.Create(ctx, &fb); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := store.Feedback.ListByTickets(ctx, []int64{1, 3})
	if err != nil {
		t.Fatalf("ListByTickets() error = %v", err)
	}
	if len(got) != 2 || got[0].Sentiment != domain.SentimentGood || got[1].Sentiment != domain.SentimentExcellent {
		t.Fatalf("ListByTickets() = %+v", got)
	}

	empty, err := store.Feedback.ListByTickets(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("ListByTickets(nil) = %+v, %v", empty, err)
	}
}
