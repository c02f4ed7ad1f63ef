package service

import (
	"context"
	"sync"
	"time"

	"github.com/kuedapur/backend-go/internal/config"
	"github.com/kuedapur/backend-go/internal/costing"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// SnapshotRunResult summarizes a batch snapshot run. Per-recipe failures do
// not stop the run.
type SnapshotRunResult struct {
	Processed int      `json:"processed"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Alerts    int      `json:"alerts"`
	Failures  []string `json:"failures,omitempty"`
}

type SnapshotService struct {
	recipes       repository.RecipeRepository
	snapshots     repository.SnapshotRepository
	alerts        repository.HppAlertRepository
	notifications repository.NotificationRepository
	calc          *costing.Calculator
	rules         costing.AlertRules
	batchSize     int64
	notifTTL      time.Duration
}

func NewSnapshotService(
	recipes repository.RecipeRepository,
	snapshots repository.SnapshotRepository,
	alerts repository.HppAlertRepository,
	notifications repository.NotificationRepository,
	cfg config.BusinessConfig,
) *SnapshotService {
	batchSize := int64(cfg.SnapshotBatchSize)
	if batchSize <= 0 {
		batchSize = 5
	}

	rules := costing.DefaultAlertRules()
	if cfg.HppAlertThresholdPct > 0 {
		rules.ChangeThresholdPct = cfg.HppAlertThresholdPct
	}
	if cfg.LowMarginThresholdPct > 0 {
		rules.LowMarginThresholdPct = cfg.LowMarginThresholdPct
	}

	ttlDays := cfg.NotificationTTLDays
	if ttlDays <= 0 {
		ttlDays = 7
	}

	return &SnapshotService{
		recipes:       recipes,
		snapshots:     snapshots,
		alerts:        alerts,
		notifications: notifications,
		calc:          costing.NewCalculator(),
		rules:         rules,
		batchSize:     batchSize,
		notifTTL:      time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// CreateSnapshot computes today's HPP for a recipe and stores it. A second
// call on the same day is a no-op (inserted=false). New snapshots are
// compared against the previous one and may raise change alerts.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, recipeID string, overhead costing.Overhead) (*domain.HppSnapshot, bool, error) {
	recipe, err := s.recipes.GetWithIngredients(ctx, recipeID)
	if err != nil {
		return nil, false, err
	}
	if recipe == nil {
		return nil, false, ErrNotFound
	}

	result := s.calc.Calculate(recipe, overhead)
	hpp := result.CostPerServing

	previous, err := s.snapshots.Latest(ctx, recipeID)
	if err != nil {
		return nil, false, err
	}

	var previousHpp float64
	if previous != nil {
		previousHpp = previous.HppValue
	}

	breakdown := make(domain.MaterialBreakdown, len(result.Breakdown))
	for _, line := range result.Breakdown {
		breakdown[line.IngredientID] = line.TotalCost
	}

	snap := &domain.HppSnapshot{
		RecipeID:          recipe.ID,
		SnapshotDate:      time.Now().UTC().Truncate(24 * time.Hour),
		HppValue:          hpp,
		MaterialCost:      result.MaterialCost,
		OperationalCost:   result.OverheadCost,
		SellingPrice:      recipe.SellingPrice,
		MarginPercentage:  costing.MarginPercentage(recipe.SellingPrice, hpp),
		PreviousHpp:       previousHpp,
		ChangePercentage:  costing.ChangePercentage(hpp, previousHpp),
		MaterialBreakdown: breakdown,
	}

	inserted, err := s.snapshots.Insert(ctx, snap)
	if err != nil {
		return nil, false, err
	}
	if !inserted {
		log.Debug().Str("recipe_id", recipe.ID).Msg("snapshot already exists for today")
		return snap, false, nil
	}

	s.raiseAlerts(ctx, recipe.Name, snap)

	return snap, true, nil
}

// RunDailySnapshots snapshots every active recipe with bounded parallelism.
func (s *SnapshotService) RunDailySnapshots(ctx context.Context) (*SnapshotRunResult, error) {
	ids, err := s.recipes.ListActiveIDs(ctx)
	if err != nil {
		return nil, err
	}

	sem := semaphore.NewWeighted(s.batchSize)
	var wg sync.WaitGroup
	var mu sync.Mutex
	result := &SnapshotRunResult{Processed: len(ids)}

	for _, id := range ids {
		if err := sem.Acquire(ctx, 1); err != nil {
			return result, err
		}

		wg.Add(1)
		go func(recipeID string) {
			defer wg.Done()
			defer sem.Release(1)

			_, inserted, err := s.CreateSnapshot(ctx, recipeID, costing.Overhead{})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				log.Error().Err(err).Str("recipe_id", recipeID).Msg("snapshot run: recipe failed")
				result.Failures = append(result.Failures, recipeID)
			case inserted:
				result.Created++
			default:
				result.Skipped++
			}
		}(id)
	}

	wg.Wait()

	log.Info().
		Int("processed", result.Processed).
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("failed", len(result.Failures)).
		Msg("snapshot run complete")

	return result, nil
}

// SnapshotRecipesForIngredient snapshots every recipe that uses the
// ingredient. Called when an ingredient's price changes so cost history picks
// up the new price without waiting for the daily run. Recipes already
// snapshotted today are skipped.
func (s *SnapshotService) SnapshotRecipesForIngredient(ctx context.Context, ingredientID string) int {
	ids, err := s.recipes.ListByIngredient(ctx, ingredientID)
	if err != nil {
		log.Warn().Err(err).Str("ingredient_id", ingredientID).Msg("price change: failed to list affected recipes")
		return 0
	}

	created := 0
	for _, id := range ids {
		_, inserted, err := s.CreateSnapshot(ctx, id, costing.Overhead{})
		if err != nil {
			log.Warn().Err(err).Str("recipe_id", id).Msg("price change: snapshot failed")
			continue
		}
		if inserted {
			created++
		}
	}
	return created
}

// ScanAlerts re-evaluates the two latest snapshots of every active recipe.
// Used by the periodic alert job to catch changes between snapshot runs.
func (s *SnapshotService) ScanAlerts(ctx context.Context) (int, error) {
	ids, err := s.recipes.ListActiveIDs(ctx)
	if err != nil {
		return 0, err
	}

	raised := 0
	for _, id := range ids {
		recipe, err := s.recipes.GetByID(ctx, id)
		if err != nil || recipe == nil {
			continue
		}

		pair, err := s.snapshots.LatestTwo(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("recipe_id", id).Msg("alert scan: failed to load snapshots")
			continue
		}
		if len(pair) < 2 {
			continue
		}

		latest := pair[0]
		latest.PreviousHpp = pair[1].HppValue
		latest.ChangePercentage = costing.ChangePercentage(latest.HppValue, latest.PreviousHpp)

		raised += s.raiseAlerts(ctx, recipe.Name, &latest)
	}

	return raised, nil
}

// raiseAlerts inserts the alerts a snapshot warrants, skipping duplicates of
// unread alerts with the same value pair. Notification fan-out is best
// effort.
func (s *SnapshotService) raiseAlerts(ctx context.Context, recipeName string, snap *domain.HppSnapshot) int {
	raised := 0
	for _, alert := range s.rules.Evaluate(recipeName, snap) {
		exists, err := s.alerts.Exists(ctx, alert.RecipeID, alert.NewValue, alert.OldValue)
		if err != nil {
			log.Warn().Err(err).Str("recipe_id", alert.RecipeID).Msg("hpp alert: dedup check failed")
			continue
		}
		if exists {
			continue
		}

		if err := s.alerts.Insert(ctx, &alert); err != nil {
			log.Warn().Err(err).Str("recipe_id", alert.RecipeID).Msg("hpp alert: insert failed")
			continue
		}
		raised++

		notification := &domain.Notification{
			Type:      alert.AlertType,
			Category:  "hpp",
			Title:     alert.Title,
			Message:   alert.Message,
			Priority:  alert.Severity,
			EntityID:  alert.RecipeID,
			ExpiresAt: time.Now().Add(s.notifTTL),
		}
		if err := s.notifications.Insert(ctx, notification); err != nil {
			log.Warn().Err(err).Str("recipe_id", alert.RecipeID).Msg("hpp alert: notification insert failed")
		}
	}
	return raised
}

func (s *SnapshotService) ListSnapshots(ctx context.Context, recipeID string, from, to time.Time) ([]domain.HppSnapshot, error) {
	return s.snapshots.List(ctx, recipeID, from, to)
}

func (s *SnapshotService) ListAlerts(ctx context.Context, filter domain.AlertFilter) ([]domain.HppAlert, error) {
	return s.alerts.List(ctx, filter)
}

func (s *SnapshotService) MarkAlertRead(ctx context.Context, id string) error {
	return s.alerts.MarkRead(ctx, id)
}

func (s *SnapshotService) DismissAlert(ctx context.Context, id string) error {
	return s.alerts.Dismiss(ctx, id)
}
