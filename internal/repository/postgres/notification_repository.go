package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
)

type notificationRepository struct {
	db *DB
}

func NewNotificationRepository(db *DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Insert(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}

	query := `
		INSERT INTO notifications (id, type, category, title, message, priority,
			entity_id, is_read, is_dismissed, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, false, $8, NOW())
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.Type, n.Category, n.Title, n.Message, n.Priority, n.EntityID, n.ExpiresAt)
	if err != nil {
		return fmt.Errorf("error inserting notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) ListActive(ctx context.Context, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, type, category, title, message, priority, entity_id,
			is_read, is_dismissed, expires_at, created_at
		FROM notifications
		WHERE is_dismissed = false AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT $1
	`

	notifications := make([]domain.Notification, 0)
	if err := r.db.SelectContext(ctx, &notifications, query, limit); err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("notification %s not found", id)
	}
	return nil
}

func (r *notificationRepository) Dismiss(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_dismissed = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error dismissing notification: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return fmt.Errorf("notification %s not found", id)
	}
	return nil
}

func (r *notificationRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("error deleting expired notifications: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting deleted notifications: %w", err)
	}

	return rows, nil
}
