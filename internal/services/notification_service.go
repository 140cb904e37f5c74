package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/edusync-app/school-service/internal/events"
	"github.com/edusync-app/school-service/internal/models"
	"github.com/edusync-app/school-service/internal/repositories"
	"github.com/edusync-app/school-service/internal/validator"
)

type notificationService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewNotificationService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, v *validator.Validator) NotificationService {
	return &notificationService{
		repo:           repo,
		eventPublisher: publisher,
		logger:         logger,
		validator:      v,
	}
}

// Broadcast inserts the notification, fans it out to the recipients and
// publishes a domain event. The insert and fan-out share a transaction;
// the event is published after commit so consumers never see uncommitted
// notifications.
func (s *notificationService) Broadcast(ctx context.Context, req *BroadcastRequest) (*BroadcastResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, errs.Error())
	}

	notification := &models.Notification{
		Title:    req.Title,
		Message:  req.Message,
		Category: req.Category,
		Priority: req.Priority,
	}

	var result BroadcastResult
	var recipients []uint

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		recipients = req.RecipientIDs
		if len(recipients) == 0 {
			ids, err := tx.User().ListIDs(ctx)
			if err != nil {
				return fmt.Errorf("list recipients: %w", err)
			}
			recipients = ids
		}

		if err := tx.Notification().Create(ctx, notification); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}

		inserted, err := tx.Notification().FanOut(ctx, notification.ID, recipients)
		if err != nil {
			return fmt.Errorf("fan out notification: %w", err)
		}

		result = BroadcastResult{NotificationID: notification.ID, Recipients: inserted}
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := events.NewEvent(events.EventNotificationBroadcast, events.NotificationBroadcastPayload{
		NotificationID: notification.ID,
		Title:          notification.Title,
		Category:       notification.Category,
		RecipientIDs:   recipients,
	})
	if err := s.eventPublisher.Publish(ctx, events.TopicNotifications, event); err != nil {
		// The notification is committed; a publish failure only delays
		// downstream consumers.
		s.logger.Error("publish broadcast event failed", "notification_id", notification.ID, "error", err)
	}

	s.logger.Info("notification broadcast", "notification_id", notification.ID, "recipients", result.Recipients)
	return &result, nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error) {
	return s.repo.Notification().ListForUser(ctx, userID, unreadOnly)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	err := s.repo.Notification().MarkRead(ctx, userID, notificationID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *notificationService) CreateEvent(ctx context.Context, req *CreateEventRequest) (*models.CalendarEvent, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, errs.Error())
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", ErrValidation)
	}

	event := &models.CalendarEvent{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
		Location:    req.Location,
		Type:        req.Type,
	}
	if err := s.repo.Notification().CreateEvent(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	domainEvent := events.NewEvent(events.EventCalendarEventCreated, event)
	if err := s.eventPublisher.Publish(ctx, events.TopicNotifications, domainEvent); err != nil {
		s.logger.Error("publish calendar event failed", "event_id", event.ID, "error", err)
	}

	return event, nil
}

func (s *notificationService) ListEvents(ctx context.Context, from, to *string) ([]*models.CalendarEvent, error) {
	var fromTime, toTime *time.Time
	if from != nil {
		t, err := time.Parse("2006-01-02", *from)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date", ErrValidation)
		}
		fromTime = &t
	}
	if to != nil {
		t, err := time.Parse("2006-01-02", *to)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date", ErrValidation)
		}
		toTime = &t
	}
	return s.repo.Notification().ListEvents(ctx, fromTime, toTime)
}
