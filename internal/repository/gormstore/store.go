// Package gormstore implements the repository interfaces on top of gorm so
// the service can run against an embedded SQLite file.
package gormstore

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/spec-kit/complaint-service/internal/repository"
)

// NewStore wires gorm-backed repositories over a shared handle.
func NewStore(db *gorm.DB) repository.Store {
	return repository.Store{
		Tickets:       &ticketRepository{db: db},
		Users:         &userRepository{db: db},
		Admins:        &adminRepository{db: db},
		Departments:   &departmentRepository{db: db},
		Severities:    &severityRepository{db: db},
		Responses:     &responseRepository{db: db},
		Feedback:      &feedbackRepository{db: db},
		Notifications: &notificationRepository{db: db},
	}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return repository.ErrDuplicate
	}
	return err
}
