package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spec-kit/complaint-service/internal/domain"
)

type departmentRepository struct {
	db *gorm.DB
}

func (r *departmentRepository) Save(ctx context.Context, dept *domain.Department) error {
	m := departmentModel{ID: dept.ID, Description: dept.Description}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"description"}),
	}).Create(&m).Error
	return translate(err)
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	var m departmentModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &domain.Department{ID: m.ID, Description: m.Description}, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	var rows []departmentModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	result := make([]domain.Department, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.Department{ID: m.ID, Description: m.Description})
	}
	return result, nil
}

type severityRepository struct {
	db *gorm.DB
}

func (r *severityRepository) Save(ctx context.Context, level *domain.SeverityLevel) error {
	m := severityModel{ID: level.ID, Description: level.Description}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"description"}),
	}).Create(&m).Error
	return translate(err)
}

func (r *severityRepository) GetByID(ctx context.Context, id int64) (*domain.SeverityLevel, error) {
	var m severityModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &domain.SeverityLevel{ID: m.ID, Description: m.Description}, nil
}

func (r *severityRepository) List(ctx context.Context) ([]domain.SeverityLevel, error) {
	var rows []severityModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	result := make([]domain.SeverityLevel, 0, len(rows))
	for _, m := range rows {
		result = append(result, domain.SeverityLevel{ID: m.ID, Description: m.Description})
	}
	return result, nil
}
