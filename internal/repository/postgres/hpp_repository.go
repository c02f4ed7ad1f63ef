package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
)

type snapshotRepository struct {
	db *DB
}

func NewSnapshotRepository(db *DB) repository.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Insert stores a daily snapshot. The unique index on (recipe_id,
// snapshot_date) makes a duplicate a no-op: ON CONFLICT DO NOTHING, and the
// affected-row count tells the caller whether anything was written.
func (r *snapshotRepository) Insert(ctx context.Context, snap *domain.HppSnapshot) (bool, error) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}

	query := `
		INSERT INTO hpp_snapshots (
			id, recipe_id, snapshot_date, hpp_value, material_cost,
			operational_cost, selling_price, margin_percentage,
			previous_hpp, change_percentage, material_cost_breakdown,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (recipe_id, snapshot_date) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		snap.ID, snap.RecipeID, snap.SnapshotDate, snap.HppValue,
		snap.MaterialCost, snap.OperationalCost, snap.SellingPrice,
		snap.MarginPercentage, snap.PreviousHpp, snap.ChangePercentage,
		snap.MaterialBreakdown,
	)
	if err != nil {
		return false, fmt.Errorf("error inserting snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error reading insert result: %w", err)
	}

	return rows > 0, nil
}

func (r *snapshotRepository) Latest(ctx context.Context, recipeID string) (*domain.HppSnapshot, error) {
	snaps, err := r.latestN(ctx, recipeID, 1)
	if err != nil || len(snaps) == 0 {
		return nil, err
	}
	return &snaps[0], nil
}

func (r *snapshotRepository) LatestTwo(ctx context.Context, recipeID string) ([]domain.HppSnapshot, error) {
	return r.latestN(ctx, recipeID, 2)
}

func (r *snapshotRepository) latestN(ctx context.Context, recipeID string, n int) ([]domain.HppSnapshot, error) {
	query := `
		SELECT id, recipe_id, snapshot_date, hpp_value, material_cost,
			operational_cost, selling_price, margin_percentage,
			previous_hpp, change_percentage, material_cost_breakdown,
			created_at
		FROM hpp_snapshots
		WHERE recipe_id = $1
		ORDER BY snapshot_date DESC
		LIMIT $2
	`

	snaps := make([]domain.HppSnapshot, 0, n)
	if err := r.db.SelectContext(ctx, &snaps, query, recipeID, n); err != nil {
		return nil, fmt.Errorf("error getting latest snapshots: %w", err)
	}

	return snaps, nil
}

func (r *snapshotRepository) List(ctx context.Context, recipeID string, from, to time.Time) ([]domain.HppSnapshot, error) {
	query := `
		SELECT id, recipe_id, snapshot_date, hpp_value, material_cost,
			operational_cost, selling_price, margin_percentage,
			previous_hpp, change_percentage, material_cost_breakdown,
			created_at
		FROM hpp_snapshots
		WHERE recipe_id = $1 AND snapshot_date >= $2 AND snapshot_date <= $3
		ORDER BY snapshot_date DESC
	`

	snaps := make([]domain.HppSnapshot, 0)
	if err := r.db.SelectContext(ctx, &snaps, query, recipeID, from, to); err != nil {
		return nil, fmt.Errorf("error listing snapshots: %w", err)
	}

	return snaps, nil
}

type hppAlertRepository struct {
	db *DB
}

func NewHppAlertRepository(db *DB) repository.HppAlertRepository {
	return &hppAlertRepository{db: db}
}

// Exists implements the equality-based dedup key for change alerts: same
// recipe, same new value, same old value, still unread.
func (r *hppAlertRepository) Exists(ctx context.Context, recipeID string, newValue, oldValue float64) (bool, error) {
	query := `
		SELECT id FROM hpp_alerts
		WHERE recipe_id = $1 AND new_value = $2 AND old_value = $3
			AND is_read = FALSE AND is_dismissed = FALSE
		LIMIT 1
	`

	var id string
	err := r.db.GetContext(ctx, &id, query, recipeID, newValue, oldValue)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("error checking existing alert: %w", err)
	}

	return true, nil
}

func (r *hppAlertRepository) Insert(ctx context.Context, alert *domain.HppAlert) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}

	query := `
		INSERT INTO hpp_alerts (
			id, recipe_id, alert_type, severity, title, message,
			old_value, new_value, change_percentage, is_read, is_dismissed,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, FALSE, FALSE, NOW())
	`

	if _, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.RecipeID, alert.AlertType, alert.Severity,
		alert.Title, alert.Message, alert.OldValue, alert.NewValue,
		alert.ChangePercentage,
	); err != nil {
		return fmt.Errorf("error inserting hpp alert: %w", err)
	}

	return nil
}

func (r *hppAlertRepository) List(ctx context.Context, filter domain.AlertFilter) ([]domain.HppAlert, error) {
	where := "WHERE a.is_dismissed = FALSE"
	args := []interface{}{}

	if filter.RecipeID != "" {
		args = append(args, filter.RecipeID)
		where += fmt.Sprintf(" AND a.recipe_id = $%d", len(args))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		where += fmt.Sprintf(" AND a.severity = $%d", len(args))
	}
	if filter.UnreadOnly {
		where += " AND a.is_read = FALSE"
	}

	args = append(args, filter.Limit(), filter.Offset())
	query := fmt.Sprintf(`
		SELECT a.id, a.recipe_id, r.name AS recipe_name, a.alert_type,
			a.severity, a.title, a.message, a.old_value, a.new_value,
			a.change_percentage, a.is_read, a.is_dismissed, a.created_at
		FROM hpp_alerts a
		JOIN recipes r ON r.id = a.recipe_id
		%s
		ORDER BY a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	alerts := make([]domain.HppAlert, 0)
	if err := r.db.SelectContext(ctx, &alerts, query, args...); err != nil {
		return nil, fmt.Errorf("error listing hpp alerts: %w", err)
	}

	return alerts, nil
}

func (r *hppAlertRepository) MarkRead(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE hpp_alerts SET is_read = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error marking alert read: %w", err)
	}
	return nil
}

func (r *hppAlertRepository) Dismiss(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE hpp_alerts SET is_dismissed = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error dismissing alert: %w", err)
	}
	return nil
}
