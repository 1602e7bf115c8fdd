package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	m := userModel{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Address:      user.Address,
		City:         user.City,
		Province:     user.Province,
		NationalID:   user.NationalID,
		Mobile:       user.Mobile,
		CreatedAt:    time.Now().UTC(),
		DeletedAt:    user.DeletedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	user := toUser(m)
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	user := toUser(m)
	return &user, nil
}

type adminRepository struct {
	db *gorm.DB
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Administrator) error {
	m := adminModel{
		ID:           admin.ID,
		Name:         admin.Name,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		Role:         string(admin.Role),
		DepartmentID: admin.DepartmentID,
		DeletedAt:    admin.DeletedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	admin.ID = m.ID
	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id int64) (*domain.Administrator, error) {
	var m adminModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	admin := toAdmin(m)
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	var m adminModel
	if err := r.db.WithContext(ctx).First(&m, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	admin := toAdmin(m)
	return &admin, nil
}

func (r *adminRepository) List(ctx context.Context, filter repository.AdminFilter) ([]domain.Administrator, error) {
	q := r.db.WithContext(ctx).Model(&adminModel{})
	if filter.DepartmentID != nil {
		q = q.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.ExcludeRole != nil {
		q = q.Where("role <> ?", string(*filter.ExcludeRole))
	}
	if !filter.IncludeDeleted {
		q = q.Where("deleted_at IS NULL")
	}
	var rows []adminModel
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	result := make([]domain.Administrator, 0, len(rows))
	for _, m := range rows {
		result = append(result, toAdmin(m))
	}
	return result, nil
}
