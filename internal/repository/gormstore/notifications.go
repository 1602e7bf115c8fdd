package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/complaint-service/internal/domain"
)

type notificationRepository struct {
	db *gorm.DB
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	m := notificationModel{
		TargetType: string(n.Target.Type),
		TargetID:   n.Target.ID,
		Title:      n.Title,
		Message:    n.Message,
		TicketID:   n.TicketID,
		IsRead:     n.Read,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	n.ID = m.ID
	n.CreatedAt = m.CreatedAt
	return nil
}

func (r *notificationRepository) ListByTarget(ctx context.Context, target domain.NotificationTarget) ([]domain.Notification, error) {
	var rows []notificationModel
	err := r.targetScope(ctx, target).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	result := make([]domain.Notification, 0, len(rows))
	for _, m := range rows {
		result = append(result, toNotification(m))
	}
	return result, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, target domain.NotificationTarget) (int64, error) {
	res := r.targetScope(ctx, target).
		Where("is_read = ?", false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, target domain.NotificationTarget) (int64, error) {
	var count int64
	err := r.targetScope(ctx, target).Where("is_read = ?", false).Count(&count).Error
	return count, translate(err)
}

func (r *notificationRepository) targetScope(ctx context.Context, target domain.NotificationTarget) *gorm.DB {
	return r.db.WithContext(ctx).Model(&notificationModel{}).
		Where("target_type = ? AND target_id = ?", string(target.Type), target.ID)
}
