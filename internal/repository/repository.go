package repository

import (
	"context"
	"time"

	"github.com/kuedapur/backend-go/internal/domain"
)

type IngredientRepository interface {
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Ingredient, int, error)
	GetByID(ctx context.Context, id string) (*domain.Ingredient, error)
	Create(ctx context.Context, ing *domain.Ingredient) error
	Update(ctx context.Context, ing *domain.Ingredient) error
	Delete(ctx context.Context, id string) error
	RecordPurchase(ctx context.Context, tx *domain.StockTransaction, newWac float64) error
	ListTransactions(ctx context.Context, ingredientID string, limit int) ([]domain.StockTransaction, error)
}

type RecipeRepository interface {
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Recipe, int, error)
	GetByID(ctx context.Context, id string) (*domain.Recipe, error)
	GetWithIngredients(ctx context.Context, id string) (*domain.Recipe, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	ListByIngredient(ctx context.Context, ingredientID string) ([]string, error)
	Create(ctx context.Context, r *domain.Recipe) error
	Update(ctx context.Context, r *domain.Recipe) error
	UpdateCost(ctx context.Context, id string, costPerUnit float64) error
	Delete(ctx context.Context, id string) error
}

type SnapshotRepository interface {
	// Insert stores a snapshot for (recipe, date). A duplicate insert for an
	// existing (recipe, date) pair reports inserted=false and no error.
	Insert(ctx context.Context, snap *domain.HppSnapshot) (inserted bool, err error)
	Latest(ctx context.Context, recipeID string) (*domain.HppSnapshot, error)
	LatestTwo(ctx context.Context, recipeID string) ([]domain.HppSnapshot, error)
	List(ctx context.Context, recipeID string, from, to time.Time) ([]domain.HppSnapshot, error)
}

type HppAlertRepository interface {
	// Exists checks for an unread alert with the same recipe and value pair,
	// the dedup key for change alerts.
	Exists(ctx context.Context, recipeID string, newValue, oldValue float64) (bool, error)
	Insert(ctx context.Context, alert *domain.HppAlert) error
	List(ctx context.Context, filter domain.AlertFilter) ([]domain.HppAlert, error)
	MarkRead(ctx context.Context, id string) error
	Dismiss(ctx context.Context, id string) error
}

type InventoryAlertRepository interface {
	ActiveExists(ctx context.Context, ingredientID, alertType string) (bool, error)
	Insert(ctx context.Context, alert *domain.InventoryAlert) error
	ListActive(ctx context.Context) ([]domain.InventoryAlert, error)
	ResolveForIngredient(ctx context.Context, ingredientID string) error
	Acknowledge(ctx context.Context, id string) error
}

type OrderRepository interface {
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, o *domain.Order) error
	Update(ctx context.Context, o *domain.Order) error
	// UpdateStatus transitions the order and applies customer rollups
	// (increment on delivery, decrement on cancellation of a delivered
	// order) in one transaction.
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type CustomerRepository interface {
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Customer, int, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
}

type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	ListActive(ctx context.Context, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Dismiss(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
