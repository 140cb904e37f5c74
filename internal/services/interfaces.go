package services

import (
	"context"
	"errors"

	"github.com/edusync-app/school-service/internal/models"
)

// Shared service-level errors. Handlers map these to HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
)

// ServiceManager wires all business services over one repository and
// manages their lifecycle.
type ServiceManager interface {
	Initialize(ctx context.Context) error

	Auth() AuthService
	Notification() NotificationService
	Dashboard() DashboardService
	Report() ReportService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ===== AUTH =====

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	// ParseToken validates a bearer token and returns its claims.
	ParseToken(tokenString string) (*Claims, error)
	GetCurrentUser(ctx context.Context, userID uint) (*models.User, error)
}

// ===== NOTIFICATIONS / CALENDAR =====

type BroadcastRequest struct {
	Title    string                       `json:"title" validate:"required,max=200"`
	Message  string                       `json:"message" validate:"required"`
	Category string                       `json:"category" validate:"omitempty,max=50"`
	Priority *models.NotificationPriority `json:"priority" validate:"omitempty,oneof=low normal high"`
	// Empty recipient list broadcasts to every user.
	RecipientIDs []uint `json:"recipient_ids"`
}

type BroadcastResult struct {
	NotificationID uint `json:"notification_id"`
	Recipients     int  `json:"recipients"`
}

type CreateEventRequest struct {
	Title       string           `json:"title" validate:"required,max=200"`
	Description *string          `json:"description"`
	Date        string           `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   *string          `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     *string          `json:"end_time" validate:"omitempty,datetime=15:04"`
	AllDay      bool             `json:"all_day"`
	Location    *string          `json:"location"`
	Type        models.EventType `json:"type" validate:"required,oneof=school holiday academic"`
}

type NotificationService interface {
	Broadcast(ctx context.Context, req *BroadcastRequest) (*BroadcastResult, error)
	ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error

	CreateEvent(ctx context.Context, req *CreateEventRequest) (*models.CalendarEvent, error)
	ListEvents(ctx context.Context, from, to *string) ([]*models.CalendarEvent, error)
}

// ===== DASHBOARD =====

type DashboardService interface {
	GetCounts(ctx context.Context) (*models.DashboardCounts, error)
}

// ===== REPORTS =====

type ReportService interface {
	// GradeReport renders the per-student grade sheet as an xlsx workbook.
	GradeReport(ctx context.Context, termID *uint) ([]byte, error)
	// AttendanceReport renders attendance rows for a class as xlsx.
	AttendanceReport(ctx context.Context, classID uint) ([]byte, error)
}
