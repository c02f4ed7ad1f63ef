package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
)

type ingredientRepository struct {
	db *DB
}

func NewIngredientRepository(db *DB) repository.IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Ingredient, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if filter.ActiveOnly {
		where += " AND is_active = TRUE"
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM ingredients " + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("error counting ingredients: %w", err)
	}

	args = append(args, filter.Limit(), filter.Offset())
	query := fmt.Sprintf(`
		SELECT id, name, unit, current_stock, min_stock, reorder_point,
			price_per_unit, weighted_average_cost, supplier, lead_time_days,
			is_active, created_at, updated_at
		FROM ingredients %s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	ingredients := make([]domain.Ingredient, 0)
	if err := r.db.SelectContext(ctx, &ingredients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("error listing ingredients: %w", err)
	}

	return ingredients, total, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	query := `
		SELECT id, name, unit, current_stock, min_stock, reorder_point,
			price_per_unit, weighted_average_cost, supplier, lead_time_days,
			is_active, created_at, updated_at
		FROM ingredients
		WHERE id = $1
	`

	var ing domain.Ingredient
	if err := r.db.GetContext(ctx, &ing, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting ingredient: %w", err)
	}

	return &ing, nil
}

func (r *ingredientRepository) Create(ctx context.Context, ing *domain.Ingredient) error {
	if ing.ID == "" {
		ing.ID = uuid.NewString()
	}

	query := `
		INSERT INTO ingredients (
			id, name, unit, current_stock, min_stock, reorder_point,
			price_per_unit, supplier, lead_time_days, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		ing.ID, ing.Name, ing.Unit, ing.CurrentStock, ing.MinStock,
		ing.ReorderPoint, ing.PricePerUnit, ing.Supplier, ing.LeadTimeDays,
		ing.IsActive,
	)
	if err != nil {
		return fmt.Errorf("error creating ingredient: %w", err)
	}

	return nil
}

func (r *ingredientRepository) Update(ctx context.Context, ing *domain.Ingredient) error {
	query := `
		UPDATE ingredients SET
			name = $2, unit = $3, current_stock = $4, min_stock = $5,
			reorder_point = $6, price_per_unit = $7, supplier = $8,
			lead_time_days = $9, is_active = $10, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		ing.ID, ing.Name, ing.Unit, ing.CurrentStock, ing.MinStock,
		ing.ReorderPoint, ing.PricePerUnit, ing.Supplier, ing.LeadTimeDays,
		ing.IsActive,
	)
	if err != nil {
		return fmt.Errorf("error updating ingredient: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("ingredient %s not found", ing.ID)
	}

	return nil
}

func (r *ingredientRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting ingredient: %w", err)
	}
	return nil
}

// RecordPurchase appends a purchase transaction, raises the stock level and
// stores the recomputed weighted average cost in one transaction.
func (r *ingredientRepository) RecordPurchase(ctx context.Context, tx *domain.StockTransaction, newWac float64) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.Type = domain.TransactionPurchase
	tx.TotalPrice = tx.Quantity * tx.UnitPrice

	return r.db.WithTx(ctx, func(dbtx *sqlx.Tx) error {
		insertQuery := `
			INSERT INTO stock_transactions (
				id, ingredient_id, type, quantity, unit_price, total_price,
				reference, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		if _, err := dbtx.ExecContext(ctx, insertQuery,
			tx.ID, tx.IngredientID, tx.Type, tx.Quantity, tx.UnitPrice,
			tx.TotalPrice, tx.Reference, time.Now(),
		); err != nil {
			return fmt.Errorf("error inserting stock transaction: %w", err)
		}

		updateQuery := `
			UPDATE ingredients SET
				current_stock = current_stock + $2,
				weighted_average_cost = $3,
				updated_at = NOW()
			WHERE id = $1
		`
		if _, err := dbtx.ExecContext(ctx, updateQuery, tx.IngredientID, tx.Quantity, newWac); err != nil {
			return fmt.Errorf("error updating ingredient stock: %w", err)
		}

		return nil
	})
}

func (r *ingredientRepository) ListTransactions(ctx context.Context, ingredientID string, limit int) ([]domain.StockTransaction, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, ingredient_id, type, quantity, unit_price, total_price,
			reference, created_at
		FROM stock_transactions
		WHERE ingredient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	transactions := make([]domain.StockTransaction, 0)
	if err := r.db.SelectContext(ctx, &transactions, query, ingredientID, limit); err != nil {
		return nil, fmt.Errorf("error listing stock transactions: %w", err)
	}

	return transactions, nil
}
