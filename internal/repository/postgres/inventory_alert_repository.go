package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
)

type inventoryAlertRepository struct {
	db *DB
}

func NewInventoryAlertRepository(db *DB) repository.InventoryAlertRepository {
	return &inventoryAlertRepository{db: db}
}

func (r *inventoryAlertRepository) ActiveExists(ctx context.Context, ingredientID, alertType string) (bool, error) {
	query := `
		SELECT id FROM inventory_alerts
		WHERE ingredient_id = $1 AND alert_type = $2 AND is_active = TRUE
		LIMIT 1
	`

	var id string
	err := r.db.GetContext(ctx, &id, query, ingredientID, alertType)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking active alert: %w", err)
	}

	return true, nil
}

func (r *inventoryAlertRepository) Insert(ctx context.Context, alert *domain.InventoryAlert) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}

	query := `
		INSERT INTO inventory_alerts (
			id, ingredient_id, alert_type, severity, message, is_active,
			created_at
		) VALUES ($1, $2, $3, $4, $5, TRUE, NOW())
	`

	if _, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.IngredientID, alert.AlertType, alert.Severity, alert.Message,
	); err != nil {
		return fmt.Errorf("error inserting inventory alert: %w", err)
	}

	return nil
}

func (r *inventoryAlertRepository) ListActive(ctx context.Context) ([]domain.InventoryAlert, error) {
	query := `
		SELECT a.id, a.ingredient_id, i.name AS ingredient_name,
			a.alert_type, a.severity, a.message, a.is_active,
			a.resolved_at, a.acknowledged_at, a.created_at
		FROM inventory_alerts a
		JOIN ingredients i ON i.id = a.ingredient_id
		WHERE a.is_active = TRUE
		ORDER BY
			CASE a.severity
				WHEN 'critical' THEN 0
				WHEN 'high' THEN 1
				WHEN 'medium' THEN 2
				ELSE 3
			END,
			a.created_at DESC
	`

	alerts := make([]domain.InventoryAlert, 0)
	if err := r.db.SelectContext(ctx, &alerts, query); err != nil {
		return nil, fmt.Errorf("error listing inventory alerts: %w", err)
	}

	return alerts, nil
}

// ResolveForIngredient deactivates all active alerts for an ingredient,
// used when its stock recovers above the reorder point.
func (r *inventoryAlertRepository) ResolveForIngredient(ctx context.Context, ingredientID string) error {
	query := `
		UPDATE inventory_alerts
		SET is_active = FALSE, resolved_at = NOW()
		WHERE ingredient_id = $1 AND is_active = TRUE
	`
	if _, err := r.db.ExecContext(ctx, query, ingredientID); err != nil {
		return fmt.Errorf("error resolving inventory alerts: %w", err)
	}
	return nil
}

func (r *inventoryAlertRepository) Acknowledge(ctx context.Context, id string) error {
	query := `UPDATE inventory_alerts SET acknowledged_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error acknowledging alert: %w", err)
	}
	return nil
}
