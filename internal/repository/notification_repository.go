package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// NotificationRepository stores notifications for users and administrators.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// ListByTarget returns newest first.
	ListByTarget(ctx context.Context, target domain.NotificationTarget) ([]domain.Notification, error)
	// MarkAllRead flips every unread notification of target and reports how many changed.
	MarkAllRead(ctx context.Context, target domain.NotificationTarget) (int64, error)
	CountUnread(ctx context.Context, target domain.NotificationTarget) (int64, error)
}

type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository builds repository.
func NewNotificationRepository(pool *pgxpool.Pool) NotificationRepository {
	return &notificationRepository{pool: pool}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	const query = `
        INSERT INTO notifications (target_type, target_id, title, message, ticket_id, is_read)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, query,
		n.Target.Type,
		n.Target.ID,
		n.Title,
		n.Message,
		n.TicketID,
		n.Read,
	).Scan(&n.ID, &n.CreatedAt)
	return translate(err)
}

func (r *notificationRepository) ListByTarget(ctx context.Context, target domain.NotificationTarget) ([]domain.Notification, error) {
	const query = `
        SELECT id, target_type, target_id, title, message, ticket_id, created_at, is_read
        FROM notifications WHERE target_type=$1 AND target_id=$2
        ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, target.Type, target.ID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.Target.Type,
			&n.Target.ID,
			&n.Title,
			&n.Message,
			&n.TicketID,
			&n.CreatedAt,
			&n.Read,
		); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, target domain.NotificationTarget) (int64, error) {
	const query = `
        UPDATE notifications SET is_read=TRUE
        WHERE target_type=$1 AND target_id=$2 AND is_read=FALSE`
	cmd, err := r.pool.Exec(ctx, query, target.Type, target.ID)
	if err != nil {
		return 0, translate(err)
	}
	return cmd.RowsAffected(), nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, target domain.NotificationTarget) (int64, error) {
	const query = `
        SELECT COUNT(*) FROM notifications
        WHERE target_type=$1 AND target_id=$2 AND is_read=FALSE`
	var count int64
	if err := r.pool.QueryRow(ctx, query, target.Type, target.ID).Scan(&count); err != nil {
		return 0, translate(err)
	}
	return count, nil
}
