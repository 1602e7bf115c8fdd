package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/complaint-service/internal/domain"
)

type responseRepository struct {
	db *gorm.DB
}

func (r *responseRepository) Create(ctx context.Context, resp *domain.Response) error {
	m := responseModel{
		TicketID:     resp.TicketID,
		AuthorRole:   string(resp.AuthorRole),
		AuthorID:     resp.AuthorID,
		Body:         resp.Body,
		DepartmentID: resp.DepartmentID,
		Status:       string(resp.Status),
		CreatedAt:    time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	resp.ID = m.ID
	resp.CreatedAt = m.CreatedAt
	return nil
}

func (r *responseRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Response, error) {
	var rows []responseModel
	err := r.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	result := make([]domain.Response, 0, len(rows))
	for _, m := range rows {
		result = append(result, toResponse(m))
	}
	return result, nil
}

type feedbackRepository struct {
	db *gorm.DB
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	m := feedbackModel{
		TicketID:  feedback.TicketID,
		Sentiment: string(feedback.Sentiment),
		Comment:   feedback.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	feedback.ID = m.ID
	feedback.CreatedAt = m.CreatedAt
	return nil
}

func (r *feedbackRepository) ListByTickets(ctx context.Context, ticketIDs []int64) ([]domain.Feedback, error) {
	if len(ticketIDs) == 0 {
		return []domain.Feedback{}, nil
	}
	var rows []feedbackModel
	if err := r.db.WithContext(ctx).Where("ticket_id IN ?", ticketIDs).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	result := make([]domain.Feedback, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.Feedback{
			ID:        m.ID,
			TicketID:  m.TicketID,
			Sentiment: domain.Sentiment(m.Sentiment),
			Comment:   m.Comment,
			CreatedAt: m.CreatedAt,
		})
	}
	return result, nil
}
