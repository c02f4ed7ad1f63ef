package service

import (
	"context"

	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) List(ctx context.Context, limit int) ([]domain.Notification, error) {
	return s.notifications.ListActive(ctx, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}

func (s *NotificationService) Dismiss(ctx context.Context, id string) error {
	return s.notifications.Dismiss(ctx, id)
}

// PurgeExpired deletes notifications past their expiry. Run periodically
// from the jobs binary.
func (s *NotificationService) PurgeExpired(ctx context.Context) (int64, error) {
	deleted, err := s.notifications.DeleteExpired(ctx)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("notifications: purged expired")
	}
	return deleted, nil
}
