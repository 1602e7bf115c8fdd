package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Store bundles every repository the engine reads and writes.
type Store struct {
	Tickets       TicketRepository
	Users         UserRepository
	Admins        AdminRepository
	Departments   DepartmentRepository
	Severities    SeverityRepository
	Responses     ResponseRepository
	Feedback      FeedbackRepository
	Notifications NotificationRepository
}

// NewPostgresStore wires Postgres-backed repositories over a shared pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return Store{
		Tickets:       NewTicketRepository(pool),
		Users:         NewUserRepository(pool),
		Admins:        NewAdminRepository(pool),
		Departments:   NewDepartmentRepository(pool),
		Severities:    NewSeverityRepository(pool),
		Responses:     NewResponseRepository(pool),
		Feedback:      NewFeedbackRepository(pool),
		Notifications: NewNotificationRepository(pool),
	}
}
