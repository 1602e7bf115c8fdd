package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// FeedbackRepository stores owner feedback on tickets.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	// ListByTickets returns feedback for any of ticketIDs in insertion order.
	ListByTickets(ctx context.Context, ticketIDs []int64) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository builds repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (ticket_id, sentiment, comment)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		feedback.TicketID,
		feedback.Sentiment,
		feedback.Comment,
	).Scan(&feedback.ID, &feedback.CreatedAt)
	return translate(err)
}

func (r *feedbackRepository) ListByTickets(ctx context.Context, ticketIDs []int64) ([]domain.Feedback, error) {
	if len(ticketIDs) == 0 {
		return nil, nil
	}
	const query = `
        SELECT id, ticket_id, sentiment, comment, created_at
        FROM feedback WHERE ticket_id = ANY($1) ORDER BY id ASC`
	rows, err := r.pool.Query(ctx, query, ticketIDs)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.TicketID, &fb.Sentiment, &fb.Comment, &fb.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}
