package gormstore

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spec-kit/complaint-service/internal/domain"
)

type departmentModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Description string `gorm:"not null"`
}

func (departmentModel) TableName() string { return "departments" }

type severityModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Description string `gorm:"not null"`
}

func (severityModel) TableName() string { return "severity_levels" }

type userModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Address      string
	City         string
	Province     string
	NationalID   string
	Mobile       string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}

func (userModel) TableName() string { return "users" }

type adminModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null"`
	DepartmentID int64  `gorm:"index;not null"`
	DeletedAt    *time.Time
}

func (adminModel) TableName() string { return "administrators" }

type ticketModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Title        string `gorm:"not null"`
	Description  string `gorm:"not null"`
	OwnerID      int64  `gorm:"index;not null"`
	Status       string `gorm:"index;not null"`
	SeverityID   int64  `gorm:"not null"`
	DepartmentID *int64
	AdminID      *int64 `gorm:"index"`
	Reason       string
	Version      int64 `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ClosedAt     *time.Time
}

func (ticketModel) TableName() string { return "tickets" }

type responseModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	TicketID     int64  `gorm:"index;not null"`
	AuthorRole   string `gorm:"not null"`
	AuthorID     int64  `gorm:"not null"`
	Body         string `gorm:"not null"`
	DepartmentID *int64
	Status       string `gorm:"not null"`
	CreatedAt    time.Time
}

func (responseModel) TableName() string { return "ticket_responses" }

type feedbackModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	TicketID  int64  `gorm:"index;not null"`
	Sentiment string `gorm:"not null"`
	Comment   string
	CreatedAt time.Time
}

func (feedbackModel) TableName() string { return "feedback" }

type notificationModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	TargetType string `gorm:"index:idx_notification_target;not null"`
	TargetID   int64  `gorm:"index:idx_notification_target;not null"`
	Title      string `gorm:"not null"`
	Message    string `gorm:"not null"`
	TicketID   *int64
	IsRead     bool `gorm:"not null"`
	CreatedAt  time.Time
}

func (notificationModel) TableName() string { return "notifications" }

// AutoMigrate creates or updates every table the store uses and seeds the
// fixed severity levels.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&departmentModel{},
		&severityModel{},
		&userModel{},
		&adminModel{},
		&ticketModel{},
		&responseModel{},
		&feedbackModel{},
		&notificationModel{},
	); err != nil {
		return err
	}
	levels := []severityModel{
		{ID: domain.SeverityHigh, Description: "High"},
		{ID: domain.SeverityMedium, Description: "Medium"},
		{ID: domain.SeverityLow, Description: "Low"},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&levels).Error
}

func toTicket(m ticketModel) domain.Ticket {
	return domain.Ticket{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		OwnerID:      m.OwnerID,
		Status:       domain.TicketStatus(m.Status),
		SeverityID:   m.SeverityID,
		DepartmentID: m.DepartmentID,
		AdminID:      m.AdminID,
		Reason:       m.Reason,
		Version:      m.Version,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		ClosedAt:     m.ClosedAt,
	}
}

func toUser(m userModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Address:      m.Address,
		City:         m.City,
		Province:     m.Province,
		NationalID:   m.NationalID,
		Mobile:       m.Mobile,
		CreatedAt:    m.CreatedAt,
		DeletedAt:    m.DeletedAt,
	}
}

func toAdmin(m adminModel) domain.Administrator {
	return domain.Administrator{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.AdminRole(m.Role),
		DepartmentID: m.DepartmentID,
		DeletedAt:    m.DeletedAt,
	}
}

func toResponse(m responseModel) domain.Response {
	return domain.Response{
		ID:           m.ID,
		TicketID:     m.TicketID,
		AuthorRole:   domain.AuthorRole(m.AuthorRole),
		AuthorID:     m.AuthorID,
		Body:         m.Body,
		DepartmentID: m.DepartmentID,
		Status:       domain.TicketStatus(m.Status),
		CreatedAt:    m.CreatedAt,
	}
}

func toNotification(m notificationModel) domain.Notification {
	return domain.Notification{
		ID:        m.ID,
		Target:    domain.NotificationTarget{Type: domain.SubjectType(m.TargetType), ID: m.TargetID},
		Title:     m.Title,
		Message:   m.Message,
		TicketID:  m.TicketID,
		CreatedAt: m.CreatedAt,
		Read:      m.IsRead,
	}
}
