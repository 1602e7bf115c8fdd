package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/complaint-service/internal/auth"
	"github.com/spec-kit/complaint-service/internal/config"
	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// DirectoryService manages the lookup tables and administrator accounts.
type DirectoryService struct {
	departments repository.DepartmentRepository
	severities  repository.SeverityRepository
	admins      repository.AdminRepository
	bcryptCost  int
	timeout     time.Duration
}

// OrgDependencies encapsulates repositories required for org management.
type OrgDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	SeverityRepo   repository.SeverityRepository
	AdminRepo      repository.AdminRepository
}

// CreateAdministratorInput describes a new administrator account.
type CreateAdministratorInput struct {
	Name         string
	Email        string
	Password     string
	Role         domain.AdminRole
	DepartmentID int64
}

// NewDirectoryService constructs the service.
func NewDirectoryService(cfg config.Config, deps OrgDependencies) *DirectoryService {
	return &DirectoryService{
		departments: deps.DepartmentRepo,
		severities:  deps.SeverityRepo,
		admins:      deps.AdminRepo,
		bcryptCost:  cfg.Auth.BcryptCost,
		timeout:     cfg.Store.Timeout(),
	}
}

// SaveDepartment creates or renames the department with the given id.
func (s *DirectoryService) SaveDepartment(ctx context.Context, id int64, description string) (*domain.Department, error) {
	description = strings.TrimSpace(description)
	if id <= 0 || description == "" {
		return nil, apperrors.NewValidationError("department needs a positive id and a description",
			map[string]any{"id": id})
	}
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	dept := &domain.Department{ID: id, Description: description}
	if err := s.departments.Save(cctx, dept); err != nil {
		return nil, storeErr(err, nil)
	}
	return dept, nil
}

// ListDepartments returns every department ordered by id.
func (s *DirectoryService) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	depts, err := s.departments.List(cctx)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return depts, nil
}

// ListSeverityLevels returns the severity levels ordered by id (High first).
func (s *DirectoryService) ListSeverityLevels(ctx context.Context) ([]domain.SeverityLevel, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	levels, err := s.severities.List(cctx)
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return levels, nil
}

// CreateAdministrator hashes the password and stores a new administrator.
func (s *DirectoryService) CreateAdministrator(ctx context.Context, input CreateAdministratorInput) (*domain.Administrator, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	details := map[string]any{}
	if input.Name == "" {
		details["name"] = "required"
	}
	if input.Email == "" {
		details["email"] = "required"
	}
	if input.Password == "" {
		details["password"] = "required"
	}
	if input.Role != domain.AdminRoleSuper && input.Role != domain.AdminRoleNormal {
		details["role"] = "unknown"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid administrator", details)
	}

	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	if _, err := s.departments.GetByID(cctx, input.DepartmentID); err != nil {
		return nil, storeErr(err, dangling("department", "department_id", input.DepartmentID))
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	admin := &domain.Administrator{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		DepartmentID: input.DepartmentID,
	}
	if err := s.admins.Create(cctx, admin); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
		}
		return nil, storeErr(err, nil)
	}
	return admin, nil
}

// ListAdministrators returns active administrators, optionally of one department.
func (s *DirectoryService) ListAdministrators(ctx context.Context, departmentID *int64) ([]domain.Administrator, error) {
	cctx, cancel := storeCtx(ctx, s.timeout)
	defer cancel()
	admins, err := s.admins.List(cctx, repository.AdminFilter{DepartmentID: departmentID})
	if err != nil {
		return nil, storeErr(err, nil)
	}
	return admins, nil
}
