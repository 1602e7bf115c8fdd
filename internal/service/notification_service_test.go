package service

import (
	"context"
	"testing"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func TestMarkAllReadIsIdempotent(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()
	target := domain.UserTarget(env.owner.ID)

	for _, title := range []string{"one", "two", "three"} {
		if _, err := env.notifications.NotifyUser(ctx, env.owner.ID, title, "body", nil); err != nil {
			t.Fatalf("NotifyUser() error = %v", err)
		}
	}

	changed, err := env.notifications.MarkAllRead(ctx, target)
	if err != nil || changed != 3 {
		t.Fatalf("MarkAllRead() = %d, %v", changed, err)
	}
	for i := 0; i < 2; i++ {
		count, err := env.notifications.UnreadCount(ctx, target)
		if err != nil || count != 0 {
			t.Fatalf("UnreadCount() = %d, %v", count, err)
		}
		if _, err := env.notifications.MarkAllRead(ctx, target); err != nil {
			t.Fatalf("MarkAllRead() error = %v", err)
		}
	}
}

func TestNotifyUnknownTargets(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()

	_, err := env.notifications.NotifyUser(ctx, 999, "t", "m", nil)
	expectCode(t, err, apperrors.ErrUnknownTarget)
	_, err = env.notifications.NotifyAdministrator(ctx, 999, "t", "m")
	expectCode(t, err, apperrors.ErrUnknownTarget)
	_, err = env.notifications.NotifyAdministrator(ctx, env.admin.ID, "", "m")
	expectCode(t, err, apperrors.ErrValidation)
	_, err = env.notifications.List(ctx, domain.NotificationTarget{Type: "ROBOT", ID: 1})
	expectCode(t, err, apperrors.ErrValidation)
}

func TestListNewestFirst(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()

	for _, title := range []string{"Progress Alert", "Second Alert"} {
		if _, err := env.notifications.NotifyAdministrator(ctx, env.admin.ID, title, "improve"); err != nil {
			t.Fatalf("NotifyAdministrator() error = %v", err)
		}
	}
	list, err := env.notifications.List(ctx, domain.AdminTarget(env.admin.ID))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].Title != "Second Alert" || list[0].Read {
		t.Fatalf("List() = %+v", list)
	}

	empty, err := env.notifications.List(ctx, domain.UserTarget(env.owner.ID))
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("List(empty) = %#v, %v", empty, err)
	}
}

func TestNotifySoftDeletedAdministrator(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()

	gone := &domain.Administrator{Name: "Gone", Email: "gone@example.com", PasswordHash: "x", Role: domain.AdminRoleNormal, DepartmentID: env.department.ID, DeletedAt: softDeleted()}
	if err := env.store.Admins.Create(ctx, gone); err != nil {
		t.Fatalf("Admins.Create() error = %v", err)
	}

	if _, err := env.notifications.NotifyAdministrator(ctx, gone.ID, "Progress Alert", "improve"); err != nil {
		t.Fatalf("NotifyAdministrator() error = %v", err)
	}
	list, err := env.notifications.List(ctx, domain.AdminTarget(gone.ID))
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].Title != "Progress Alert" {
		t.Fatalf("List() = %+v", list)
	}
}
