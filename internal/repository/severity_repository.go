package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// SeverityRepository manages severity level reference data.
type SeverityRepository interface {
	Save(ctx context.Context, level *domain.SeverityLevel) error
	GetByID(ctx context.Context, id int64) (*domain.SeverityLevel, error)
	List(ctx context.Context) ([]domain.SeverityLevel, error)
}

type severityRepository struct {
	pool *pgxpool.Pool
}

// NewSeverityRepository builds the repository.
func NewSeverityRepository(pool *pgxpool.Pool) SeverityRepository {
	return &severityRepository{pool: pool}
}

func (r *severityRepository) Save(ctx context.Context, level *domain.SeverityLevel) error {
	const query = `
        INSERT INTO severity_levels (id, description) VALUES ($1,$2)
        ON CONFLICT (id) DO UPDATE SET description=EXCLUDED.description`
	_, err := r.pool.Exec(ctx, query, level.ID, level.Description)
	return translate(err)
}

func (r *severityRepository) GetByID(ctx context.Context, id int64) (*domain.SeverityLevel, error) {
	var level domain.SeverityLevel
	if err := r.pool.QueryRow(ctx, `SELECT id, description FROM severity_levels WHERE id=$1`, id).Scan(
		&level.ID,
		&level.Description,
	); err != nil {
		return nil, translate(err)
	}
	return &level, nil
}

func (r *severityRepository) List(ctx context.Context) ([]domain.SeverityLevel, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, description FROM severity_levels ORDER BY id ASC`)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.SeverityLevel
	for rows.Next() {
		var level domain.SeverityLevel
		if err := rows.Scan(&level.ID, &level.Description); err != nil {
			return nil, err
		}
		result = append(result, level)
	}
	return result, rows.Err()
}
