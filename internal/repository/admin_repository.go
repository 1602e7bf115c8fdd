package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// AdminFilter defines query params for administrator listing.
type AdminFilter struct {
	DepartmentID   *int64
	ExcludeRole    *domain.AdminRole
	IncludeDeleted bool
}

// AdminRepository handles persistence for administrators.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Administrator) error
	GetByID(ctx context.Context, id int64) (*domain.Administrator, error)
	GetByEmail(ctx context.Context, email string) (*domain.Administrator, error)
	List(ctx context.Context, filter AdminFilter) ([]domain.Administrator, error)
}

type adminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository instantiates the repository.
func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &adminRepository{pool: pool}
}

const adminColumns = `id, name, email, password_hash, role, department_id, deleted_at`

func (r *adminRepository) Create(ctx context.Context, admin *domain.Administrator) error {
	const query = `
        INSERT INTO administrators (name, email, password_hash, role, department_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`

	err := r.pool.QueryRow(ctx, query,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Role,
		admin.DepartmentID,
	).Scan(&admin.ID)
	return translate(err)
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	var admin domain.Administrator
	if err := r.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM administrators WHERE id=$1`, id).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Role,
		&admin.DepartmentID,
		&admin.DeletedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	var admin domain.Administrator
	if err := r.pool.QueryRow(ctx, `SELECT `+adminColumns+` FROM administrators WHERE email=$1`, email).Scan(
		&admin.ID,
		&admin.Name,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Role,
		&admin.DepartmentID,
		&admin.DeletedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context, filter AdminFilter) ([]domain.Administrator, error) {
	query := `SELECT ` + adminColumns + ` FROM administrators`
	args := []any{}
	clauses := []string{}

	if filter.DepartmentID != nil {
		args = append(args, *filter.DepartmentID)
		clauses = append(clauses, fmt.Sprintf("department_id=$%d", len(args)))
	}
	if filter.ExcludeRole != nil {
		args = append(args, *filter.ExcludeRole)
		clauses = append(clauses, fmt.Sprintf("role<>$%d", len(args)))
	}
	if !filter.IncludeDeleted {
		clauses = append(clauses, "deleted_at IS NULL")
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.Administrator
	for rows.Next() {
		var admin domain.Administrator
		if err := rows.Scan(
			&admin.ID,
			&admin.Name,
			&admin.Email,
			&admin.PasswordHash,
			&admin.Role,
			&admin.DepartmentID,
			&admin.DeletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, admin)
	}
	return result, rows.Err()
}
