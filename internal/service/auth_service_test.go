package service

import (
	"context"
	"testing"

	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	_, err := env.auth.RegisterUser(context.Background(), RegisterUserInput{Name: "Again", Email: "OWNER@example.com", Password: "password1"})
	expectCode(t, err, apperrors.ErrConflict)

	_, err = env.auth.RegisterUser(context.Background(), RegisterUserInput{Name: "x", Email: "not-an-email", Password: "short"})
	expectCode(t, err, apperrors.ErrValidation)
}

func TestLoginResolvesUserThenAdministrator(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()

	user, err := env.auth.Login(ctx, "owner@example.com", "password1")
	if err != nil {
		t.Fatalf("Login(user) error = %v", err)
	}
	if user.SubjectType != domain.SubjectTypeUser || user.User == nil || user.Token == "" {
		t.Fatalf("user login = %+v", user)
	}

	admin, err := env.auth.Login(ctx, "sara@example.com", "password1")
	if err != nil {
		t.Fatalf("Login(admin) error = %v", err)
	}
	if admin.SubjectType != domain.SubjectTypeAdmin || admin.Admin == nil {
		t.Fatalf("admin login = %+v", admin)
	}
	claims, err := env.auth.TokenManager().ParseToken(admin.Token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if claims.Role == nil || *claims.Role != domain.AdminRoleNormal {
		t.Fatalf("role claim = %v", claims.Role)
	}

	_, err = env.auth.Login(ctx, "owner@example.com", "wrong-password")
	expectCode(t, err, apperrors.ErrUnauthorized)
	_, err = env.auth.Login(ctx, "nobody@example.com", "password1")
	expectCode(t, err, apperrors.ErrUnauthorized)
}

func TestLoginRejectsSoftDeletedAccounts(t *testing.T) {
	env := newTestEnv(t, config.NotificationConfig{})
	ctx := context.Background()

	hash := env.owner.PasswordHash
	gone := &domain.User{Name: "Gone", Email: "gone@example.com", PasswordHash: hash, DeletedAt: softDeleted()}
	if err := env.store.Users.Create(ctx, gone); err != nil {
		t.Fatalf("Users.Create() error = %v", err)
	}
	_, err := env.auth.Login(ctx, "gone@example.com", "password1")
	expectCode(t, err, apperrors.ErrUnauthorized)
}
