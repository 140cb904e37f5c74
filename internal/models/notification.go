package models

import "time"

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

type Notification struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Title    string `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Message  string `json:"message" gorm:"not null;type:text" validate:"required"`
	Category string `json:"category" gorm:"size:50;index"`

	// Optional column; older schemas may not carry it. The seeder probes
	// for it before referencing it.
	Priority *NotificationPriority `json:"priority,omitempty" gorm:"size:10"`

	CreatedAt time.Time `json:"created_at"`

	// Relations
	Recipients []UserNotification `json:"recipients,omitempty" gorm:"foreignKey:NotificationID"`
}

func (Notification) TableName() string {
	return "notifications"
}

// UserNotification carries the per-recipient read flag.
type UserNotification struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	UserID         uint `json:"user_id" gorm:"not null;uniqueIndex:idx_user_notification"`
	NotificationID uint `json:"notification_id" gorm:"not null;uniqueIndex:idx_user_notification"`
	Read           bool `json:"read" gorm:"not null;default:false;index"`

	CreatedAt time.Time `json:"created_at"`
}

func (UserNotification) TableName() string {
	return "user_notifications"
}

type EventType string

const (
	EventSchool   EventType = "school"
	EventHoliday  EventType = "holiday"
	EventAcademic EventType = "academic"
)

type CalendarEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:200" validate:"required,max=200"`
	Description *string   `json:"description" gorm:"type:text"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	StartTime   *string   `json:"start_time" gorm:"size:5"` // "09:00"
	EndTime     *string   `json:"end_time" gorm:"size:5"`
	AllDay      bool      `json:"all_day" gorm:"not null;default:false"`
	Location    *string   `json:"location" gorm:"size:200"`
	Type        EventType `json:"type" gorm:"not null;size:10;index" validate:"omitempty,oneof=school holiday academic"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Participants []EventParticipant `json:"participants,omitempty" gorm:"foreignKey:EventID"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}

type EventParticipant struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	EventID uint   `json:"event_id" gorm:"not null;uniqueIndex:idx_event_participant"`
	UserID  uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_event_participant"`
	Status  string `json:"status" gorm:"size:20;default:going"`

	CreatedAt time.Time `json:"created_at"`
}

func (EventParticipant) TableName() string {
	return "event_participants"
}
