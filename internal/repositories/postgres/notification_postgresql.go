package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
)

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationPostgreSQL(db *gorm.DB) repositories.NotificationRepository {
	return &notificationRepository{db: db}
}

// ===== NOTIFICATIONS =====

// notificationInsert builds the insert for a notification. The priority
// column is optional and only present on newer schemas, so an unset
// priority is omitted from the column list entirely instead of being
// written as NULL against a column that may not exist.
func notificationInsert(db *gorm.DB, n *models.Notification) *gorm.DB {
	if n.Priority == nil {
		db = db.Omit("Priority")
	}
	return db.Create(n)
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if err := notificationInsert(r.db.WithContext(ctx), n).Error; err != nil {
		return handleDBError(err, "create notification")
	}
	return nil
}

// FanOut inserts one user_notifications row per recipient. Duplicate rows
// are skipped, not raised, so a re-broadcast never aborts the caller.
func (r *notificationRepository) FanOut(ctx context.Context, notificationID uint, userIDs []uint) (int, error) {
	inserted := 0
	for _, userID := range userIDs {
		link := &models.UserNotification{
			UserID:         userID,
			NotificationID: notificationID,
		}
		ok, err := insertIgnore(r.db.WithContext(ctx), link)
		if err != nil {
			return inserted, handleDBError(err, "fan out notification")
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error) {
	var notifications []*models.Notification
	query := r.db.WithContext(ctx).
		Joins("JOIN user_notifications ON user_notifications.notification_id = notifications.id").
		Where("user_notifications.user_id = ?", userID)
	if unreadOnly {
		query = query.Where("user_notifications.read = ?", false)
	}
	if err := query.Order("notifications.created_at desc").Find(&notifications).Error; err != nil {
		return nil, handleDBError(err, "list notifications for user")
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserNotification{}).
		Where("user_id = ? AND notification_id = ?", userID, notificationID).
		Update("read", true)
	if result.Error != nil {
		return handleDBError(result.Error, "mark notification read")
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// ===== CALENDAR EVENTS =====

func (r *notificationRepository) CreateEvent(ctx context.Context, event *models.CalendarEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return handleDBError(err, "create calendar event")
	}
	return nil
}

func (r *notificationRepository) AddParticipants(ctx context.Context, eventID uint, userIDs []uint, status string) (int, error) {
	inserted := 0
	for _, userID := range userIDs {
		link := &models.EventParticipant{
			EventID: eventID,
			UserID:  userID,
			Status:  status,
		}
		ok, err := insertIgnore(r.db.WithContext(ctx), link)
		if err != nil {
			return inserted, handleDBError(err, "add event participant")
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

func (r *notificationRepository) ListEvents(ctx context.Context, from, to *time.Time) ([]*models.CalendarEvent, error) {
	var events []*models.CalendarEvent
	query := r.db.WithContext(ctx).Model(&models.CalendarEvent{})
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	if err := query.Order("date").Find(&events).Error; err != nil {
		return nil, handleDBError(err, "list calendar events")
	}
	return events, nil
}
