package service

import (
	"context"
	"testing"
	"time"

	"github.com/kuedapur/backend-go/internal/cache"
	"github.com/kuedapur/backend-go/internal/config"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIngredientRepo struct {
	ingredients  map[string]*domain.Ingredient
	transactions []domain.StockTransaction
}

func (f *fakeIngredientRepo) List(ctx context.Context, filter domain.ListFilter) ([]domain.Ingredient, int, error) {
	out := make([]domain.Ingredient, 0, len(f.ingredients))
	for _, ing := range f.ingredients {
		out = append(out, *ing)
	}
	return out, len(out), nil
}

func (f *fakeIngredientRepo) GetByID(ctx context.Context, id string) (*domain.Ingredient, error) {
	ing, ok := f.ingredients[id]
	if !ok {
		return nil, nil
	}
	copied := *ing
	return &copied, nil
}

func (f *fakeIngredientRepo) Create(ctx context.Context, ing *domain.Ingredient) error {
	f.ingredients[ing.ID] = ing
	return nil
}

func (f *fakeIngredientRepo) Update(ctx context.Context, ing *domain.Ingredient) error {
	f.ingredients[ing.ID] = ing
	return nil
}

func (f *fakeIngredientRepo) Delete(ctx context.Context, id string) error {
	delete(f.ingredients, id)
	return nil
}

func (f *fakeIngredientRepo) RecordPurchase(ctx context.Context, tx *domain.StockTransaction, newWac float64) error {
	f.transactions = append(f.transactions, *tx)
	ing := f.ingredients[tx.IngredientID]
	ing.CurrentStock += tx.Quantity
	ing.WeightedAverageCost = &newWac
	return nil
}

func (f *fakeIngredientRepo) ListTransactions(ctx context.Context, ingredientID string, limit int) ([]domain.StockTransaction, error) {
	var out []domain.StockTransaction
	for _, tx := range f.transactions {
		if tx.IngredientID == ingredientID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type fakeInventoryAlertRepo struct {
	active map[string]string // ingredient -> alert type
}

func (f *fakeInventoryAlertRepo) ActiveExists(ctx context.Context, ingredientID, alertType string) (bool, error) {
	return f.active[ingredientID] == alertType, nil
}

func (f *fakeInventoryAlertRepo) Insert(ctx context.Context, alert *domain.InventoryAlert) error {
	f.active[alert.IngredientID] = alert.AlertType
	return nil
}

func (f *fakeInventoryAlertRepo) ListActive(ctx context.Context) ([]domain.InventoryAlert, error) {
	out := make([]domain.InventoryAlert, 0, len(f.active))
	for id, alertType := range f.active {
		out = append(out, domain.InventoryAlert{IngredientID: id, AlertType: alertType, IsActive: true})
	}
	return out, nil
}

func (f *fakeInventoryAlertRepo) ResolveForIngredient(ctx context.Context, ingredientID string) error {
	delete(f.active, ingredientID)
	return nil
}

func (f *fakeInventoryAlertRepo) Acknowledge(ctx context.Context, id string) error { return nil }

func newTestInventoryService(ingredients map[string]*domain.Ingredient) (*InventoryService, *fakeIngredientRepo, *fakeInventoryAlertRepo, *fakeNotificationRepo) {
	repo := &fakeIngredientRepo{ingredients: ingredients}
	alerts := &fakeInventoryAlertRepo{active: make(map[string]string)}
	notifications := &fakeNotificationRepo{}

	svc := NewInventoryService(repo, alerts, notifications, cache.NewNoopInventoryDashboardCache(), config.BusinessConfig{
		NotificationTTLDays: 7,
	})

	return svc, repo, alerts, notifications
}

func TestScanRaisesAndResolves(t *testing.T) {
	ing := &domain.Ingredient{
		ID:           "i1",
		Name:         "Tepung Terigu",
		Unit:         "kg",
		CurrentStock: 0,
		MinStock:     100,
		ReorderPoint: 80,
		IsActive:     true,
	}
	svc, _, alerts, notifications := newTestInventoryService(map[string]*domain.Ingredient{"i1": ing})

	result, err := svc.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Checked)
	assert.Equal(t, 1, result.Raised)
	assert.Equal(t, domain.InventoryAlertOutOfStock, alerts.active["i1"])
	require.Len(t, notifications.notifications, 1)
	assert.Equal(t, domain.SeverityCritical, notifications.notifications[0].Priority)

	// Same state again: the active alert suppresses a duplicate.
	result, err = svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Raised)
	assert.Len(t, notifications.notifications, 1)

	// Restock above the reorder point resolves the alert.
	ing.CurrentStock = 120
	result, err = svc.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Resolved)
	assert.Empty(t, alerts.active)
}

func TestRecordPurchaseRecomputesWac(t *testing.T) {
	ing := &domain.Ingredient{
		ID:           "i1",
		Name:         "Gula Pasir",
		Unit:         "kg",
		CurrentStock: 10,
		MinStock:     20,
		PricePerUnit: 12000,
		IsActive:     true,
	}
	svc, repo, _, _ := newTestInventoryService(map[string]*domain.Ingredient{"i1": ing})

	_, err := svc.RecordPurchase(context.Background(), "i1", 10, 12000, "PO-1")
	require.NoError(t, err)

	_, err = svc.RecordPurchase(context.Background(), "i1", 5, 15000, "PO-2")
	require.NoError(t, err)

	updated := repo.ingredients["i1"]
	require.NotNil(t, updated.WeightedAverageCost)
	assert.Equal(t, 13000.0, *updated.WeightedAverageCost)
	assert.Equal(t, 25.0, updated.CurrentStock)
}

func TestRecordPurchaseUnknownIngredient(t *testing.T) {
	svc, _, _, _ := newTestInventoryService(map[string]*domain.Ingredient{})

	_, err := svc.RecordPurchase(context.Background(), "missing", 5, 1000, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboard(t *testing.T) {
	ingredients := map[string]*domain.Ingredient{
		"i1": {ID: "i1", Name: "Tepung", Unit: "kg", CurrentStock: 40, MinStock: 100, PricePerUnit: 12000, Supplier: "Toko Makmur", IsActive: true},
		"i2": {ID: "i2", Name: "Gula", Unit: "kg", CurrentStock: 150, MinStock: 100, PricePerUnit: 15000, IsActive: true},
	}
	svc, _, _, _ := newTestInventoryService(ingredients)

	dashboard, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.TotalIngredients)
	assert.Equal(t, 1, dashboard.StatusCounts["critical"])
	assert.Equal(t, 1, dashboard.StatusCounts["adequate"])
	require.Len(t, dashboard.Reorders, 1)

	reorder := dashboard.Reorders[0]
	assert.Equal(t, "i1", reorder.IngredientID)
	assert.Equal(t, 300, reorder.RecommendedQuantity)
	assert.Equal(t, "Toko Makmur", reorder.Supplier)
	assert.Equal(t, 300*12000.0, reorder.EstimatedCost)
	assert.Equal(t, 300*12000.0, dashboard.TotalReorderCost)
}

func TestPlanningWithExplicitUsage(t *testing.T) {
	ing := &domain.Ingredient{
		ID:           "i1",
		Name:         "Tepung",
		Unit:         "kg",
		CurrentStock: 90,
		MinStock:     20,
		PricePerUnit: 12000,
		IsActive:     true,
	}
	svc, _, _, _ := newTestInventoryService(map[string]*domain.Ingredient{"i1": ing})

	summary, err := svc.Planning(context.Background(), "i1", 60)
	require.NoError(t, err)

	assert.Equal(t, 60.0, summary.MonthlyUsage)
	// sqrt(2 * 720 * 50000 / 2400)
	assert.InDelta(t, 173.205, summary.EconomicOrderQty, 0.001)
	require.NotNil(t, summary.DaysRemaining)
	assert.InDelta(t, 45.0, *summary.DaysRemaining, 0.001)
	assert.Equal(t, 1_080_000.0, summary.CarryingCost.InventoryValue)
	assert.Equal(t, 270_000.0, summary.CarryingCost.AnnualCarryingCost)
	assert.Equal(t, 22_500.0, summary.CarryingCost.MonthlyCarryingCost)
}

func TestPlanningDerivesUsageFromTransactions(t *testing.T) {
	ing := &domain.Ingredient{
		ID:           "i1",
		Name:         "Gula",
		Unit:         "kg",
		CurrentStock: 60,
		MinStock:     20,
		PricePerUnit: 15000,
		IsActive:     true,
	}
	svc, repo, _, _ := newTestInventoryService(map[string]*domain.Ingredient{"i1": ing})

	now := time.Now()
	repo.transactions = []domain.StockTransaction{
		{IngredientID: "i1", Type: domain.TransactionUsage, Quantity: 20, CreatedAt: now.AddDate(0, 0, -5)},
		{IngredientID: "i1", Type: domain.TransactionUsage, Quantity: 10, CreatedAt: now.AddDate(0, 0, -20)},
		{IngredientID: "i1", Type: domain.TransactionUsage, Quantity: 40, CreatedAt: now.AddDate(0, 0, -45)},
		{IngredientID: "i1", Type: domain.TransactionPurchase, Quantity: 50, CreatedAt: now.AddDate(0, 0, -3)},
	}

	summary, err := svc.Planning(context.Background(), "i1", 0)
	require.NoError(t, err)

	// Only usage transactions inside the last 30 days count.
	assert.Equal(t, 30.0, summary.MonthlyUsage)
	require.NotNil(t, summary.DaysRemaining)
	assert.InDelta(t, 60.0, *summary.DaysRemaining, 0.001)
}

func TestPlanningWithoutUsage(t *testing.T) {
	ing := &domain.Ingredient{
		ID:           "i1",
		Name:         "Vanili",
		Unit:         "botol",
		CurrentStock: 5,
		MinStock:     2,
		PricePerUnit: 8000,
		IsActive:     true,
	}
	svc, _, _, _ := newTestInventoryService(map[string]*domain.Ingredient{"i1": ing})

	summary, err := svc.Planning(context.Background(), "i1", 0)
	require.NoError(t, err)

	assert.Zero(t, summary.MonthlyUsage)
	assert.Nil(t, summary.DaysRemaining)
	assert.Equal(t, 2.0, summary.EconomicOrderQty)
}

type fakeSnapshotTrigger struct {
	calls []string
}

func (f *fakeSnapshotTrigger) SnapshotRecipesForIngredient(ctx context.Context, ingredientID string) int {
	f.calls = append(f.calls, ingredientID)
	return 1
}

func TestUpdateIngredientFiresPriceChange(t *testing.T) {
	ing := &domain.Ingredient{
		ID:           "i1",
		Name:         "Tepung",
		Unit:         "kg",
		CurrentStock: 50,
		MinStock:     20,
		PricePerUnit: 12000,
		IsActive:     true,
	}
	svc, _, _, _ := newTestInventoryService(map[string]*domain.Ingredient{"i1": ing})
	trigger := &fakeSnapshotTrigger{}
	svc.SetPriceChangeListener(trigger)

	// Same price: no snapshot refresh.
	updated := *ing
	updated.Supplier = "Toko Baru"
	require.NoError(t, svc.UpdateIngredient(context.Background(), &updated))
	assert.Empty(t, trigger.calls)

	repriced := updated
	repriced.PricePerUnit = 13500
	require.NoError(t, svc.UpdateIngredient(context.Background(), &repriced))
	assert.Equal(t, []string{"i1"}, trigger.calls)
}
