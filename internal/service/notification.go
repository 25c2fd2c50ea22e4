package service

import (
	"context"
	"log/slog"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/events"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

type notificationService struct {
	store     repository.Store
	publisher events.Publisher
	logger    *slog.Logger
}

func NewNotificationService(store repository.Store, publisher events.Publisher) NotificationService {
	return &notificationService{
		store:     store,
		publisher: publisher,
		logger:    logger.WithService("notification"),
	}
}

func (s *notificationService) Notify(ctx context.Context, note *domain.Notification) {
	if err := s.store.Notifications().Create(ctx, note); err != nil {
		s.logger.Error("failed to persist notification",
			"type", note.Type, "recipient_kind", note.Recipient.Kind, "recipient_id", note.Recipient.ID, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, note); err != nil {
		s.logger.Warn("failed to publish notification event", "notification_id", note.ID, "error", err)
	}
}

func (s *notificationService) NotifyOperators(ctx context.Context, noteType domain.NotificationType, title, message string, data map[string]string, link string) {
	staff, err := s.store.Staff().ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to list operators for notification", "type", noteType, "error", err)
		return
	}
	for _, member := range staff {
		s.Notify(ctx, &domain.Notification{
			Recipient: member.Actor(),
			Type:      noteType,
			Title:     title,
			Message:   message,
			Data:      data,
			Link:      link,
		})
	}
}

func (s *notificationService) List(ctx context.Context, recipient domain.Actor, page, pageSize int32) ([]domain.Notification, int32, error) {
	return s.store.Notifications().ListByRecipient(ctx, recipient, page, pageSize)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id int32, recipient domain.Actor) error {
	return s.store.Notifications().MarkAsRead(ctx, id, recipient)
}
