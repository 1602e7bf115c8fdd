package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

// ticketIDFloor keeps ticket numbers in the same range as the Postgres schema.
const ticketIDFloor = 1520

type ticketRepository struct {
	db *gorm.DB
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	now := time.Now().UTC()
	m := ticketModel{
		Title:        ticket.Title,
		Description:  ticket.Description,
		OwnerID:      ticket.OwnerID,
		Status:       string(ticket.Status),
		SeverityID:   ticket.SeverityID,
		DepartmentID: ticket.DepartmentID,
		AdminID:      ticket.AdminID,
		Reason:       ticket.Reason,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
		ClosedAt:     ticket.ClosedAt,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int64
		if err := tx.Model(&ticketModel{}).
			Select("COALESCE(MAX(id), ?) + 1", ticketIDFloor).
			Scan(&next).Error; err != nil {
			return err
		}
		m.ID = next
		return tx.Create(&m).Error
	})
	if err != nil {
		return translate(err)
	}
	ticket.ID = m.ID
	ticket.Version = m.Version
	ticket.CreatedAt = m.CreatedAt
	ticket.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&ticketModel{}).
		Where("id = ? AND version = ?", ticket.ID, ticket.Version).
		Updates(map[string]any{
			"title":         ticket.Title,
			"description":   ticket.Description,
			"status":        string(ticket.Status),
			"severity_id":   ticket.SeverityID,
			"department_id": ticket.DepartmentID,
			"admin_id":      ticket.AdminID,
			"reason":        ticket.Reason,
			"closed_at":     ticket.ClosedAt,
			"version":       gorm.Expr("version + 1"),
			"updated_at":    now,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ticketModel{}).Where("id = ?", ticket.ID).Count(&count).Error; err != nil {
			return translate(err)
		}
		if count == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrVersionConflict
	}
	ticket.Version++
	ticket.UpdatedAt = now
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	var m ticketModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	ticket := toTicket(m)
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	q := ticketScope(r.db.WithContext(ctx).Model(&ticketModel{}), filter).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true})
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	var rows []ticketModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	result := make([]domain.Ticket, 0, len(rows))
	for _, m := range rows {
		result = append(result, toTicket(m))
	}
	return result, nil
}

func (r *ticketRepository) CountByStatus(ctx context.Context, filter repository.TicketFilter) (map[domain.TicketStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := ticketScope(r.db.WithContext(ctx).Model(&ticketModel{}), filter).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	counts := make(map[domain.TicketStatus]int64, len(rows))
	for _, row := range rows {
		counts[domain.TicketStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func ticketScope(q *gorm.DB, filter repository.TicketFilter) *gorm.DB {
	if filter.OwnerID != nil {
		q = q.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.AdminID != nil {
		q = q.Where("admin_id = ?", *filter.AdminID)
	}
	if filter.DepartmentID != nil {
		q = q.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	return q
}
