package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	timeout    time.Duration
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo  repository.UserRepository
	AdminRepo repository.AdminRepository
}

// RegisterUserInput carries the profile of a new ticket owner.
type RegisterUserInput struct {
	Name       string
	Email      string
	Password   string
	Address    string
	City       string
	Province   string
	NationalID string
	Mobile     string
}

// LoginResult is the authenticated account and its bearer token. Exactly one
// of User and Admin is set.
type LoginResult struct {
	SubjectType domain.SubjectType
	User        *domain.User
	Admin       *domain.Administrator
	Token       string
	ExpiresAt   time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		admins:     deps.AdminRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		timeout:    cfg.Store.Timeout(),
	}
}

// RegisterUser creates a new ticket owner account and signs them in.
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterUserInput) (*LoginResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	details := map[string]any{}
	if input.Name == "" {
		details["name"] = "required"
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		details["email"] = "invalid"
	}
	if len(input.Password) < 8 {
		details["password"] = "min 8 characters"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid registration", details)
	}

	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
		City:         input.City,
		Province:     input.Province,
		NationalID:   input.NationalID,
		Mobile:       input.Mobile,
	}
	if err := s.users.Create(cctx, user); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
		}
		return nil, storeErr(err, nil)
	}
	return s.issue(domain.SubjectTypeUser, user, nil)
}

// Login authenticates by email, trying ticket owners first and then
// administrators. Soft-deleted accounts cannot sign in.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByEmail(cctx, email)
	switch {
	case err == nil:
		if user.Deleted() || auth.ComparePassword(user.PasswordHash, password) != nil {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return s.issue(domain.SubjectTypeUser, user, nil)
	case !isNotFound(err):
		return nil, storeErr(err, nil)
	}

	admin, err := s.admins.GetByEmail(cctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, storeErr(err, nil)
	}
	if admin.Deleted() || auth.ComparePassword(admin.PasswordHash, password) != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issue(domain.SubjectTypeAdmin, nil, admin)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issue(subject domain.SubjectType, user *domain.User, admin *domain.Administrator) (*LoginResult, error) {
	result := &LoginResult{SubjectType: subject, User: user, Admin: admin}
	var (
		id   int64
		role *domain.AdminRole
	)
	if user != nil {
		id = user.ID
	} else {
		id = admin.ID
		r := admin.Role
		role = &r
	}
	token, exp, err := s.tokenMgr.GenerateToken(id, subject, role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	result.Token = token
	result.ExpiresAt = exp
	return result, nil
}
