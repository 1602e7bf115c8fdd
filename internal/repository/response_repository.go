package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ResponseRepository stores the append-only response thread of tickets.
type ResponseRepository interface {
	Create(ctx context.Context, resp *domain.Response) error
	// ListByTicket returns responses in insertion order.
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Response, error)
}

type responseRepository struct {
	pool *pgxpool.Pool
}

// NewResponseRepository builds repository.
func NewResponseRepository(pool *pgxpool.Pool) ResponseRepository {
	return &responseRepository{pool: pool}
}

func (r *responseRepository) Create(ctx context.Context, resp *domain.Response) error {
	const query = `
        INSERT INTO ticket_responses (ticket_id, author_role, author_id, body, department_id, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		resp.TicketID,
		resp.AuthorRole,
		resp.AuthorID,
		resp.Body,
		resp.DepartmentID,
		resp.Status,
	).Scan(&resp.ID, &resp.CreatedAt)
	return translate(err)
}

func (r *responseRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Response, error) {
	const query = `
        SELECT id, ticket_id, author_role, author_id, body, department_id, status, created_at
        FROM ticket_responses WHERE ticket_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.Response
	for rows.Next() {
		var resp domain.Response
		if err := rows.Scan(
			&resp.ID,
			&resp.TicketID,
			&resp.AuthorRole,
			&resp.AuthorID,
			&resp.Body,
			&resp.DepartmentID,
			&resp.Status,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, resp)
	}
	return result, rows.Err()
}
