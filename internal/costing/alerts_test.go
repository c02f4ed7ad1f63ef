package costing

import (
	"testing"

	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePercentage(t *testing.T) {
	assert.InDelta(t, 20.0, ChangePercentage(120, 100), 0.001)
	assert.InDelta(t, -10.0, ChangePercentage(90, 100), 0.001)
	assert.Equal(t, 0.0, ChangePercentage(120, 0))
}

func TestEvaluateIncrease(t *testing.T) {
	rules := DefaultAlertRules()

	snap := &domain.HppSnapshot{
		RecipeID:         "r1",
		HppValue:         115,
		PreviousHpp:      100,
		ChangePercentage: 15,
		MarginPercentage: 40,
	}

	alerts := rules.Evaluate("Bolu Pandan", snap)

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.HppAlertIncrease, alerts[0].AlertType)
	assert.Equal(t, domain.SeverityMedium, alerts[0].Severity)
	assert.Equal(t, 100.0, alerts[0].OldValue)
	assert.Equal(t, 115.0, alerts[0].NewValue)
}

func TestEvaluateIncreaseEscalatesSeverity(t *testing.T) {
	rules := DefaultAlertRules()

	snap := &domain.HppSnapshot{
		RecipeID:         "r1",
		HppValue:         130,
		PreviousHpp:      100,
		ChangePercentage: 30,
		MarginPercentage: 40,
	}

	alerts := rules.Evaluate("Bolu Pandan", snap)

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
}

func TestEvaluateDecrease(t *testing.T) {
	rules := DefaultAlertRules()

	snap := &domain.HppSnapshot{
		RecipeID:         "r1",
		HppValue:         85,
		PreviousHpp:      100,
		ChangePercentage: -15,
		MarginPercentage: 40,
	}

	alerts := rules.Evaluate("Bolu Pandan", snap)

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.HppAlertDecrease, alerts[0].AlertType)
	assert.Equal(t, domain.SeverityLow, alerts[0].Severity)
}

func TestEvaluateBelowThresholdIsQuiet(t *testing.T) {
	rules := DefaultAlertRules()

	snap := &domain.HppSnapshot{
		RecipeID:         "r1",
		HppValue:         105,
		PreviousHpp:      100,
		ChangePercentage: 5,
		MarginPercentage: 40,
	}

	assert.Empty(t, rules.Evaluate("Bolu Pandan", snap))
}

func TestEvaluateFirstSnapshotRaisesNothing(t *testing.T) {
	rules := DefaultAlertRules()

	// No previous snapshot: change is zero and must not alert even though
	// the value itself is new.
	snap := &domain.HppSnapshot{
		RecipeID:         "r1",
		HppValue:         9000,
		PreviousHpp:      0,
		ChangePercentage: 0,
		MarginPercentage: 40,
	}

	assert.Empty(t, rules.Evaluate("Bolu Pandan", snap))
}

func TestEvaluateLowMargin(t *testing.T) {
	rules := DefaultAlertRules()

	snap := &domain.HppSnapshot{
		RecipeID:         "r1",
		HppValue:         9000,
		PreviousHpp:      9000,
		MarginPercentage: 15,
	}

	alerts := rules.Evaluate("Bolu Pandan", snap)

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.HppAlertLowMargin, alerts[0].AlertType)
	assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
}

func TestEvaluateCriticalMargin(t *testing.T) {
	rules := DefaultAlertRules()

	snap := &domain.HppSnapshot{
		RecipeID:         "r1",
		HppValue:         9000,
		PreviousHpp:      9000,
		MarginPercentage: 8,
	}

	alerts := rules.Evaluate("Bolu Pandan", snap)

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.SeverityCritical, alerts[0].Severity)
}
