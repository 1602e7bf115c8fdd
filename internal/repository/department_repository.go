package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// DepartmentRepository manages department reference data.
type DepartmentRepository interface {
	// Save inserts or replaces the department with dept.ID.
	Save(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) Save(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (id, description) VALUES ($1,$2)
        ON CONFLICT (id) DO UPDATE SET description=EXCLUDED.description`
	_, err := r.pool.Exec(ctx, query, dept.ID, dept.Description)
	return translate(err)
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var dept domain.Department
	if err := r.pool.QueryRow(ctx, `SELECT id, description FROM departments WHERE id=$1`, id).Scan(
		&dept.ID,
		&dept.Description,
	); err != nil {
		return nil, translate(err)
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, description FROM departments ORDER BY id ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.Department
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Description); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	return result, rows.Err()
}
