package repositories

import "context"

// Repository aggregates all entity repositories.
type Repository interface {
	// Identity domain
	User() UserRepository
	Teacher() TeacherRepository
	Student() StudentRepository

	// Academic calendar domain
	Academic() AcademicRepository

	// Class/course domain
	Class() ClassRepository

	// Assignment domain
	Assignment() AssignmentRepository

	// Attendance and grade records
	Records() RecordsRepository

	// Notifications and calendar events
	Notification() NotificationRepository

	// Generic table-keyed CRUD (the data-access endpoint)
	Resource() ResourceRepository

	// Transaction support: fn runs against a tx-scoped Repository; any
	// error rolls the whole transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}
