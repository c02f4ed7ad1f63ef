package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kuedapur/backend-go/internal/config"
	"github.com/kuedapur/backend-go/internal/costing"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecipeRepo struct {
	recipes      map[string]*domain.Recipe
	byIngredient map[string][]string
}

func (f *fakeRecipeRepo) List(ctx context.Context, filter domain.ListFilter) ([]domain.Recipe, int, error) {
	return nil, 0, nil
}

func (f *fakeRecipeRepo) GetByID(ctx context.Context, id string) (*domain.Recipe, error) {
	return f.recipes[id], nil
}

func (f *fakeRecipeRepo) GetWithIngredients(ctx context.Context, id string) (*domain.Recipe, error) {
	return f.recipes[id], nil
}

func (f *fakeRecipeRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.recipes))
	for id := range f.recipes {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeRecipeRepo) ListByIngredient(ctx context.Context, ingredientID string) ([]string, error) {
	return f.byIngredient[ingredientID], nil
}

func (f *fakeRecipeRepo) Create(ctx context.Context, r *domain.Recipe) error { return nil }
func (f *fakeRecipeRepo) Update(ctx context.Context, r *domain.Recipe) error { return nil }
func (f *fakeRecipeRepo) UpdateCost(ctx context.Context, id string, costPerUnit float64) error {
	return nil
}
func (f *fakeRecipeRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeSnapshotRepo struct {
	mu        sync.Mutex
	snapshots []domain.HppSnapshot
}

func (f *fakeSnapshotRepo) Insert(ctx context.Context, snap *domain.HppSnapshot) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.snapshots {
		if existing.RecipeID == snap.RecipeID && existing.SnapshotDate.Equal(snap.SnapshotDate) {
			return false, nil
		}
	}
	f.snapshots = append(f.snapshots, *snap)
	return true, nil
}

func (f *fakeSnapshotRepo) Latest(ctx context.Context, recipeID string) (*domain.HppSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *domain.HppSnapshot
	for i := range f.snapshots {
		snap := &f.snapshots[i]
		if snap.RecipeID != recipeID {
			continue
		}
		if latest == nil || snap.SnapshotDate.After(latest.SnapshotDate) {
			latest = snap
		}
	}
	return latest, nil
}

func (f *fakeSnapshotRepo) LatestTwo(ctx context.Context, recipeID string) ([]domain.HppSnapshot, error) {
	var out []domain.HppSnapshot
	for i := len(f.snapshots) - 1; i >= 0 && len(out) < 2; i-- {
		if f.snapshots[i].RecipeID == recipeID {
			out = append(out, f.snapshots[i])
		}
	}
	return out, nil
}

func (f *fakeSnapshotRepo) List(ctx context.Context, recipeID string, from, to time.Time) ([]domain.HppSnapshot, error) {
	return f.snapshots, nil
}

type fakeHppAlertRepo struct {
	mu     sync.Mutex
	alerts []domain.HppAlert
}

func (f *fakeHppAlertRepo) Exists(ctx context.Context, recipeID string, newValue, oldValue float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.alerts {
		if a.RecipeID == recipeID && a.NewValue == newValue && a.OldValue == oldValue && !a.IsRead {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHppAlertRepo) Insert(ctx context.Context, alert *domain.HppAlert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, *alert)
	return nil
}

func (f *fakeHppAlertRepo) List(ctx context.Context, filter domain.AlertFilter) ([]domain.HppAlert, error) {
	return f.alerts, nil
}

func (f *fakeHppAlertRepo) MarkRead(ctx context.Context, id string) error { return nil }
func (f *fakeHppAlertRepo) Dismiss(ctx context.Context, id string) error  { return nil }

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

func (f *fakeNotificationRepo) Insert(ctx context.Context, n *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationRepo) ListActive(ctx context.Context, limit int) ([]domain.Notification, error) {
	return f.notifications, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error { return nil }
func (f *fakeNotificationRepo) Dismiss(ctx context.Context, id string) error  { return nil }
func (f *fakeNotificationRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func newTestSnapshotService(recipes *fakeRecipeRepo) (*SnapshotService, *fakeSnapshotRepo, *fakeHppAlertRepo, *fakeNotificationRepo) {
	snapshots := &fakeSnapshotRepo{}
	alerts := &fakeHppAlertRepo{}
	notifications := &fakeNotificationRepo{}

	svc := NewSnapshotService(recipes, snapshots, alerts, notifications, config.BusinessConfig{
		HppAlertThresholdPct:  10,
		LowMarginThresholdPct: 20,
		NotificationTTLDays:   7,
		SnapshotBatchSize:     5,
	})

	return svc, snapshots, alerts, notifications
}

func testRecipe(price float64) *domain.Recipe {
	return &domain.Recipe{
		ID:           "r1",
		Name:         "Bolu Pandan",
		Servings:     1,
		SellingPrice: 20000,
		IsActive:     true,
		Ingredients: []domain.RecipeIngredient{
			{IngredientID: "i1", IngredientName: "Tepung", Quantity: 1, PricePerUnit: price},
		},
	}
}

func TestCreateSnapshotIsIdempotentPerDay(t *testing.T) {
	recipes := &fakeRecipeRepo{recipes: map[string]*domain.Recipe{"r1": testRecipe(9000)}}
	svc, snapshots, _, _ := newTestSnapshotService(recipes)

	_, created, err := svc.CreateSnapshot(context.Background(), "r1", costing.Overhead{})
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = svc.CreateSnapshot(context.Background(), "r1", costing.Overhead{})
	require.NoError(t, err)
	assert.False(t, created)

	assert.Len(t, snapshots.snapshots, 1)
}

func TestCreateSnapshotUnknownRecipe(t *testing.T) {
	recipes := &fakeRecipeRepo{recipes: map[string]*domain.Recipe{}}
	svc, _, _, _ := newTestSnapshotService(recipes)

	_, _, err := svc.CreateSnapshot(context.Background(), "missing", costing.Overhead{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSnapshotFirstOneRaisesNoAlert(t *testing.T) {
	recipes := &fakeRecipeRepo{recipes: map[string]*domain.Recipe{"r1": testRecipe(9000)}}
	svc, _, alerts, _ := newTestSnapshotService(recipes)

	snap, _, err := svc.CreateSnapshot(context.Background(), "r1", costing.Overhead{})
	require.NoError(t, err)

	assert.Zero(t, snap.PreviousHpp)
	assert.Zero(t, snap.ChangePercentage)
	assert.Empty(t, alerts.alerts)
}

func TestSnapshotChangeRaisesAlertOnce(t *testing.T) {
	recipe := testRecipe(9000)
	recipes := &fakeRecipeRepo{recipes: map[string]*domain.Recipe{"r1": recipe}}
	svc, snapshots, alerts, notifications := newTestSnapshotService(recipes)

	// Yesterday's snapshot at the old price.
	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
	snapshots.snapshots = append(snapshots.snapshots, domain.HppSnapshot{
		RecipeID:     "r1",
		SnapshotDate: yesterday,
		HppValue:     9000,
	})

	// Flour price jumps 20%.
	recipe.Ingredients[0].PricePerUnit = 10800

	snap, created, err := svc.CreateSnapshot(context.Background(), "r1", costing.Overhead{})
	require.NoError(t, err)
	require.True(t, created)

	assert.InDelta(t, 20.0, snap.ChangePercentage, 0.001)
	require.Len(t, alerts.alerts, 1)
	assert.Equal(t, domain.HppAlertIncrease, alerts.alerts[0].AlertType)
	assert.Len(t, notifications.notifications, 1)

	// Re-raising the same change is deduplicated while the alert is unread.
	raised := svc.raiseAlerts(context.Background(), recipe.Name, snap)
	assert.Zero(t, raised)
	assert.Len(t, alerts.alerts, 1)
}

func TestSnapshotRecipesForIngredient(t *testing.T) {
	recipes := &fakeRecipeRepo{
		recipes:      map[string]*domain.Recipe{"r1": testRecipe(9000)},
		byIngredient: map[string][]string{"i1": {"r1"}},
	}
	svc, snapshots, _, _ := newTestSnapshotService(recipes)

	created := svc.SnapshotRecipesForIngredient(context.Background(), "i1")
	assert.Equal(t, 1, created)
	assert.Len(t, snapshots.snapshots, 1)

	// Already snapshotted today, so a second price change adds nothing.
	created = svc.SnapshotRecipesForIngredient(context.Background(), "i1")
	assert.Zero(t, created)

	// Ingredient not used by any recipe.
	created = svc.SnapshotRecipesForIngredient(context.Background(), "i2")
	assert.Zero(t, created)
}

func TestRunDailySnapshots(t *testing.T) {
	recipes := &fakeRecipeRepo{recipes: map[string]*domain.Recipe{
		"r1": testRecipe(9000),
		"r2": {
			ID:       "r2",
			Name:     "Nastar",
			Servings: 20,
			IsActive: true,
			Ingredients: []domain.RecipeIngredient{
				{IngredientID: "i2", Quantity: 0.5, PricePerUnit: 30000},
			},
		},
	}}
	svc, snapshots, _, _ := newTestSnapshotService(recipes)

	result, err := svc.RunDailySnapshots(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 2, result.Created)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, result.Failures)
	assert.Len(t, snapshots.snapshots, 2)

	// A second run the same day creates nothing new.
	result, err = svc.RunDailySnapshots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Skipped)
	assert.Zero(t, result.Created)
}
