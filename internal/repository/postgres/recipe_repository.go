package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
)

type recipeRepository struct {
	db *DB
}

func NewRecipeRepository(db *DB) repository.RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Recipe, int, error) {
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
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM recipes "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("error counting recipes: %w", err)
	}

	args = append(args, filter.Limit(), filter.Offset())
	query := fmt.Sprintf(`
		SELECT id, name, servings, selling_price, cost_per_unit,
			margin_percentage, is_active, created_at, updated_at
		FROM recipes %s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	recipes := make([]domain.Recipe, 0)
	if err := r.db.SelectContext(ctx, &recipes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("error listing recipes: %w", err)
	}

	return recipes, total, nil
}

func (r *recipeRepository) GetByID(ctx context.Context, id string) (*domain.Recipe, error) {
	query := `
		SELECT id, name, servings, selling_price, cost_per_unit,
			margin_percentage, is_active, created_at, updated_at
		FROM recipes
		WHERE id = $1
	`

	var recipe domain.Recipe
	if err := r.db.GetContext(ctx, &recipe, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting recipe: %w", err)
	}

	return &recipe, nil
}

// GetWithIngredients loads a recipe and its ingredient lines joined with
// current prices, which is what the HPP calculator consumes.
func (r *recipeRepository) GetWithIngredients(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, err := r.GetByID(ctx, id)
	if err != nil || recipe == nil {
		return recipe, err
	}

	query := `
		SELECT ri.recipe_id, ri.ingredient_id, ri.quantity, ri.unit,
			i.name AS ingredient_name, i.price_per_unit, i.weighted_average_cost
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = $1
		ORDER BY i.name
	`

	lines := make([]domain.RecipeIngredient, 0)
	if err := r.db.SelectContext(ctx, &lines, query, id); err != nil {
		return nil, fmt.Errorf("error loading recipe ingredients: %w", err)
	}

	recipe.Ingredients = lines
	return recipe, nil
}

func (r *recipeRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0)
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM recipes WHERE is_active = TRUE`); err != nil {
		return nil, fmt.Errorf("error listing active recipes: %w", err)
	}
	return ids, nil
}

// ListByIngredient returns the distinct recipes using an ingredient, used
// to refresh snapshots after a price change.
func (r *recipeRepository) ListByIngredient(ctx context.Context, ingredientID string) ([]string, error) {
	ids := make([]string, 0)
	query := `SELECT DISTINCT recipe_id FROM recipe_ingredients WHERE ingredient_id = $1`
	if err := r.db.SelectContext(ctx, &ids, query, ingredientID); err != nil {
		return nil, fmt.Errorf("error listing recipes by ingredient: %w", err)
	}
	return ids, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *domain.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO recipes (
				id, name, servings, selling_price, cost_per_unit,
				margin_percentage, is_active, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		`
		if _, err := tx.ExecContext(ctx, query,
			recipe.ID, recipe.Name, recipe.Servings, recipe.SellingPrice,
			recipe.CostPerUnit, recipe.MarginPercentage, recipe.IsActive,
		); err != nil {
			return fmt.Errorf("error creating recipe: %w", err)
		}

		return insertRecipeIngredients(ctx, tx, recipe)
	})
}

func (r *recipeRepository) Update(ctx context.Context, recipe *domain.Recipe) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE recipes SET
				name = $2, servings = $3, selling_price = $4,
				margin_percentage = $5, is_active = $6, updated_at = NOW()
			WHERE id = $1
		`
		result, err := tx.ExecContext(ctx, query,
			recipe.ID, recipe.Name, recipe.Servings, recipe.SellingPrice,
			recipe.MarginPercentage, recipe.IsActive,
		)
		if err != nil {
			return fmt.Errorf("error updating recipe: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return fmt.Errorf("recipe %s not found", recipe.ID)
		}

		if recipe.Ingredients == nil {
			return nil
		}

		// Replace the ingredient list wholesale.
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
			return fmt.Errorf("error clearing recipe ingredients: %w", err)
		}
		return insertRecipeIngredients(ctx, tx, recipe)
	})
}

func insertRecipeIngredients(ctx context.Context, tx *sqlx.Tx, recipe *domain.Recipe) error {
	if len(recipe.Ingredients) == 0 {
		return nil
	}

	query := `
		INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity, unit)
		VALUES ($1, $2, $3, $4)
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, ri := range recipe.Ingredients {
		if _, err := stmt.ExecContext(ctx, recipe.ID, ri.IngredientID, ri.Quantity, ri.Unit); err != nil {
			return fmt.Errorf("error inserting recipe ingredient: %w", err)
		}
	}

	return nil
}

func (r *recipeRepository) UpdateCost(ctx context.Context, id string, costPerUnit float64) error {
	query := `UPDATE recipes SET cost_per_unit = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, costPerUnit); err != nil {
		return fmt.Errorf("error updating recipe cost: %w", err)
	}
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting recipe ingredients: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id); err != nil {
			return fmt.Errorf("error deleting recipe: %w", err)
		}
		return nil
	})
}
