package service

import (
	"context"
	"math"
	"time"

	"github.com/kuedapur/backend-go/internal/cache"
	"github.com/kuedapur/backend-go/internal/config"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/inventory"
	"github.com/kuedapur/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// dashboardPageSize bounds the ingredient listing backing the dashboard.
const dashboardPageSize = 1000

// wacHistoryLimit caps how many past purchases feed the weighted average.
const wacHistoryLimit = 500

// ScanResult summarizes one inventory alert scan.
type ScanResult struct {
	Checked  int `json:"checked"`
	Raised   int `json:"raised"`
	Resolved int `json:"resolved"`
}

// PriceChangeListener reacts to ingredient cost changes, typically by
// refreshing recipe cost snapshots.
type PriceChangeListener interface {
	SnapshotRecipesForIngredient(ctx context.Context, ingredientID string) int
}

type InventoryService struct {
	ingredients   repository.IngredientRepository
	alerts        repository.InventoryAlertRepository
	notifications repository.NotificationRepository
	cache         cache.InventoryDashboardCache
	notifTTL      time.Duration
	onPriceChange PriceChangeListener
}

func NewInventoryService(
	ingredients repository.IngredientRepository,
	alerts repository.InventoryAlertRepository,
	notifications repository.NotificationRepository,
	cacheImpl cache.InventoryDashboardCache,
	cfg config.BusinessConfig,
) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopInventoryDashboardCache()
	}

	ttlDays := cfg.NotificationTTLDays
	if ttlDays <= 0 {
		ttlDays = 7
	}

	return &InventoryService{
		ingredients:   ingredients,
		alerts:        alerts,
		notifications: notifications,
		cache:         cacheImpl,
		notifTTL:      time.Duration(ttlDays) * 24 * time.Hour,
	}
}

func (s *InventoryService) ListIngredients(ctx context.Context, filter domain.ListFilter) ([]domain.Ingredient, int, error) {
	return s.ingredients.List(ctx, filter)
}

func (s *InventoryService) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	ing, err := s.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, ErrNotFound
	}
	return ing, nil
}

// CreateIngredient defaults the reorder point to 80% of minimum stock when
// none is given.
func (s *InventoryService) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	if ing.ReorderPoint <= 0 {
		ing.ReorderPoint = ing.MinStock * 0.8
	}
	if err := s.ingredients.Create(ctx, ing); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// SetPriceChangeListener registers the hook fired when an ingredient's cost
// changes.
func (s *InventoryService) SetPriceChangeListener(l PriceChangeListener) {
	s.onPriceChange = l
}

func (s *InventoryService) UpdateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	prior, err := s.GetIngredient(ctx, ing.ID)
	if err != nil {
		return err
	}

	if err := s.ingredients.Update(ctx, ing); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)

	if prior.PricePerUnit != ing.PricePerUnit {
		s.notifyPriceChange(ctx, ing.ID)
	}
	return nil
}

func (s *InventoryService) DeleteIngredient(ctx context.Context, id string) error {
	if err := s.ingredients.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateDashboard(ctx)
	return nil
}

// RecordPurchase appends a purchase transaction, recomputes the weighted
// average cost over the full purchase history, and resolves stock alerts
// when the restock brings the ingredient back above its reorder point.
func (s *InventoryService) RecordPurchase(ctx context.Context, ingredientID string, quantity, unitPrice float64, reference string) (*domain.StockTransaction, error) {
	ing, err := s.GetIngredient(ctx, ingredientID)
	if err != nil {
		return nil, err
	}

	tx := &domain.StockTransaction{
		IngredientID: ing.ID,
		Type:         domain.TransactionPurchase,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalPrice:   quantity * unitPrice,
		Reference:    reference,
	}

	history, err := s.ingredients.ListTransactions(ctx, ing.ID, wacHistoryLimit)
	if err != nil {
		return nil, err
	}

	wac := inventory.WeightedAverageCost(ing, append(history, *tx))
	if err := s.ingredients.RecordPurchase(ctx, tx, wac.WeightedAveragePrice); err != nil {
		return nil, err
	}

	ing.CurrentStock += quantity
	if inventory.IsStockHealthy(ing) {
		if err := s.alerts.ResolveForIngredient(ctx, ing.ID); err != nil {
			log.Warn().Err(err).Str("ingredient_id", ing.ID).Msg("inventory: alert resolve failed")
		}
	}

	s.invalidateDashboard(ctx)
	s.notifyPriceChange(ctx, ing.ID)
	return tx, nil
}

// notifyPriceChange refreshes recipe cost snapshots for recipes using the
// ingredient. Best effort.
func (s *InventoryService) notifyPriceChange(ctx context.Context, ingredientID string) {
	if s.onPriceChange == nil {
		return
	}
	if created := s.onPriceChange.SnapshotRecipesForIngredient(ctx, ingredientID); created > 0 {
		log.Info().Str("ingredient_id", ingredientID).Int("snapshots", created).Msg("inventory: price change refreshed recipe costs")
	}
}

func (s *InventoryService) ListTransactions(ctx context.Context, ingredientID string, limit int) ([]domain.StockTransaction, error) {
	return s.ingredients.ListTransactions(ctx, ingredientID, limit)
}

// PlanningSummary aggregates purchase planning figures for one ingredient.
type PlanningSummary struct {
	IngredientID     string                 `json:"ingredient_id"`
	MonthlyUsage     float64                `json:"monthly_usage"`
	DaysRemaining    *float64               `json:"days_remaining,omitempty"`
	EconomicOrderQty float64                `json:"economic_order_quantity"`
	CarryingCost     inventory.CarryingCost `json:"carrying_cost"`
}

// Planning estimates order quantity, runway and holding cost for an
// ingredient. When no monthly usage is given it is derived from usage
// transactions over the last 30 days. DaysRemaining is omitted when usage
// is zero.
func (s *InventoryService) Planning(ctx context.Context, ingredientID string, monthlyUsage float64) (*PlanningSummary, error) {
	ing, err := s.GetIngredient(ctx, ingredientID)
	if err != nil {
		return nil, err
	}

	if monthlyUsage <= 0 {
		history, err := s.ingredients.ListTransactions(ctx, ing.ID, wacHistoryLimit)
		if err != nil {
			return nil, err
		}
		cutoff := time.Now().AddDate(0, 0, -30)
		for _, tx := range history {
			if tx.Type == domain.TransactionUsage && tx.CreatedAt.After(cutoff) {
				monthlyUsage += tx.Quantity
			}
		}
	}

	summary := &PlanningSummary{
		IngredientID:     ing.ID,
		MonthlyUsage:     monthlyUsage,
		EconomicOrderQty: inventory.EconomicOrderQuantity(ing, monthlyUsage),
		CarryingCost:     inventory.EstimateCarryingCost(ing),
	}
	if days := inventory.DaysRemaining(ing.CurrentStock, monthlyUsage); !math.IsInf(days, 1) {
		summary.DaysRemaining = &days
	}

	return summary, nil
}

// Dashboard builds the stock overview, served from cache when fresh.
func (s *InventoryService) Dashboard(ctx context.Context) (*domain.InventoryDashboard, error) {
	if dashboard, ok, err := s.cache.Get(ctx); err == nil && ok {
		return dashboard, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get failed")
	}

	ingredients, _, err := s.ingredients.List(ctx, domain.ListFilter{PageSize: dashboardPageSize, ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	dashboard := &domain.InventoryDashboard{
		TotalIngredients: len(ingredients),
		StatusCounts:     make(map[string]int),
		Reorders:         make([]domain.ReorderSuggestion, 0),
	}

	for i := range ingredients {
		ing := &ingredients[i]
		dashboard.StatusCounts[inventory.StockStatus(ing.CurrentStock, ing.MinStock)]++

		rec := inventory.Recommend(ing.CurrentStock, ing.MinStock)
		if !rec.ShouldReorder {
			continue
		}

		cost := float64(rec.RecommendedQuantity) * effectiveUnitPrice(ing)
		dashboard.Reorders = append(dashboard.Reorders, domain.ReorderSuggestion{
			IngredientID:        ing.ID,
			IngredientName:      ing.Name,
			Unit:                ing.Unit,
			CurrentStock:        ing.CurrentStock,
			MinStock:            ing.MinStock,
			RecommendedQuantity: rec.RecommendedQuantity,
			Priority:            rec.Priority,
			Reason:              rec.Reason,
			EstimatedCost:       cost,
			Supplier:            ing.Supplier,
		})
		dashboard.TotalReorderCost += cost
	}

	alerts, err := s.alerts.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	dashboard.ActiveAlerts = alerts

	if err := s.cache.Set(ctx, dashboard); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set failed")
	}

	return dashboard, nil
}

// ReorderSuggestions returns just the reorder list from the dashboard.
func (s *InventoryService) ReorderSuggestions(ctx context.Context) ([]domain.ReorderSuggestion, error) {
	dashboard, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.Reorders, nil
}

// Scan walks all active ingredients, raising alerts for unhealthy stock
// levels and resolving alerts for ingredients that recovered. Each raised
// alert also fans out a notification, best effort.
func (s *InventoryService) Scan(ctx context.Context) (*ScanResult, error) {
	ingredients, _, err := s.ingredients.List(ctx, domain.ListFilter{PageSize: dashboardPageSize, ActiveOnly: true})
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Checked: len(ingredients)}

	for i := range ingredients {
		ing := &ingredients[i]

		payload := inventory.BuildAlertPayload(ing)
		if payload == nil {
			if inventory.IsStockHealthy(ing) {
				if err := s.alerts.ResolveForIngredient(ctx, ing.ID); err != nil {
					log.Warn().Err(err).Str("ingredient_id", ing.ID).Msg("inventory scan: resolve failed")
					continue
				}
				result.Resolved++
			}
			continue
		}

		exists, err := s.alerts.ActiveExists(ctx, ing.ID, payload.AlertType)
		if err != nil {
			log.Warn().Err(err).Str("ingredient_id", ing.ID).Msg("inventory scan: dedup check failed")
			continue
		}
		if exists {
			continue
		}

		if err := s.alerts.Insert(ctx, payload); err != nil {
			log.Warn().Err(err).Str("ingredient_id", ing.ID).Msg("inventory scan: alert insert failed")
			continue
		}
		result.Raised++

		notification := &domain.Notification{
			Type:      payload.AlertType,
			Category:  "inventory",
			Title:     "Peringatan Stok",
			Message:   payload.Message,
			Priority:  payload.Severity,
			EntityID:  ing.ID,
			ExpiresAt: time.Now().Add(s.notifTTL),
		}
		if err := s.notifications.Insert(ctx, notification); err != nil {
			log.Warn().Err(err).Str("ingredient_id", ing.ID).Msg("inventory scan: notification insert failed")
		}
	}

	s.invalidateDashboard(ctx)

	log.Info().
		Int("checked", result.Checked).
		Int("raised", result.Raised).
		Int("resolved", result.Resolved).
		Msg("inventory scan complete")

	return result, nil
}

func (s *InventoryService) ListActiveAlerts(ctx context.Context) ([]domain.InventoryAlert, error) {
	return s.alerts.ListActive(ctx)
}

func (s *InventoryService) AcknowledgeAlert(ctx context.Context, id string) error {
	return s.alerts.Acknowledge(ctx, id)
}

func (s *InventoryService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: cache invalidate failed")
	}
}

// effectiveUnitPrice prefers the purchase-derived weighted average cost over
// the list price.
func effectiveUnitPrice(ing *domain.Ingredient) float64 {
	if ing.WeightedAverageCost != nil && *ing.WeightedAverageCost > 0 {
		return *ing.WeightedAverageCost
	}
	return ing.PricePerUnit
}
