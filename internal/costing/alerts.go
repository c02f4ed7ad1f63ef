package costing

import (
	"fmt"
	"math"

	"github.com/kuedapur/backend-go/internal/domain"
)

// Default alerting thresholds (percent).
const (
	DefaultChangeThreshold    = 10.0
	DefaultLowMarginThreshold = 20.0
	escalationThreshold       = 20.0
	criticalMarginThreshold   = 10.0
)

// ChangePercentage compares two snapshot values. When the previous value is
// zero there is nothing to compare against (first snapshot), so the change
// is reported as zero rather than infinity.
func ChangePercentage(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// AlertRules evaluates snapshot-over-snapshot changes and margins into
// pending HPP alerts.
type AlertRules struct {
	ChangeThresholdPct    float64
	LowMarginThresholdPct float64
}

func DefaultAlertRules() AlertRules {
	return AlertRules{
		ChangeThresholdPct:    DefaultChangeThreshold,
		LowMarginThresholdPct: DefaultLowMarginThreshold,
	}
}

// Evaluate returns the alerts a snapshot should raise, comparing against the
// previous snapshot value carried on it. Rules, in order: significant HPP
// increase, significant decrease, low margin.
func (r AlertRules) Evaluate(recipeName string, snap *domain.HppSnapshot) []domain.HppAlert {
	var alerts []domain.HppAlert

	change := snap.ChangePercentage
	if snap.PreviousHpp > 0 && math.Abs(change) >= r.ChangeThresholdPct {
		if change > 0 {
			severity := domain.SeverityMedium
			if change > escalationThreshold {
				severity = domain.SeverityHigh
			}
			alerts = append(alerts, domain.HppAlert{
				RecipeID:         snap.RecipeID,
				AlertType:        domain.HppAlertIncrease,
				Severity:         severity,
				Title:            fmt.Sprintf("HPP %s naik %.1f%%", recipeName, change),
				Message:          fmt.Sprintf("HPP meningkat %.1f%% dari Rp %.0f menjadi Rp %.0f", change, snap.PreviousHpp, snap.HppValue),
				OldValue:         snap.PreviousHpp,
				NewValue:         snap.HppValue,
				ChangePercentage: change,
			})
		} else {
			alerts = append(alerts, domain.HppAlert{
				RecipeID:         snap.RecipeID,
				AlertType:        domain.HppAlertDecrease,
				Severity:         domain.SeverityLow,
				Title:            fmt.Sprintf("HPP %s turun %.1f%%", recipeName, math.Abs(change)),
				Message:          fmt.Sprintf("HPP menurun %.1f%% dari Rp %.0f menjadi Rp %.0f", math.Abs(change), snap.PreviousHpp, snap.HppValue),
				OldValue:         snap.PreviousHpp,
				NewValue:         snap.HppValue,
				ChangePercentage: change,
			})
		}
	}

	if snap.MarginPercentage > 0 && snap.MarginPercentage < r.LowMarginThresholdPct {
		severity := domain.SeverityHigh
		if snap.MarginPercentage < criticalMarginThreshold {
			severity = domain.SeverityCritical
		}
		alerts = append(alerts, domain.HppAlert{
			RecipeID:  snap.RecipeID,
			AlertType: domain.HppAlertLowMargin,
			Severity:  severity,
			Title:     "Margin Keuntungan Rendah",
			Message:   fmt.Sprintf("Margin keuntungan %s hanya %.1f%%. Pertimbangkan menaikkan harga jual atau menurunkan biaya produksi.", recipeName, snap.MarginPercentage),
			NewValue:  snap.MarginPercentage,
		})
	}

	return alerts
}
