package customer

import (
	"testing"
	"time"

	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestProjectLTV(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	c := &domain.Customer{
		TotalOrders:  10,
		TotalSpent:   1_000_000,
		FirstOrderAt: daysAgo(now, 90),
		LastOrderAt:  daysAgo(now, 0),
	}

	proj := ProjectLTV(c, now)

	assert.InDelta(t, 100_000, proj.AverageOrderValue, 0.001)
	assert.InDelta(t, 10, proj.OrderFrequencyDays, 0.001)
	assert.InDelta(t, 3_650_000, proj.OneYear, 0.001)
	assert.InDelta(t, 3_650_000*3*0.85, proj.ThreeYear, 0.001)
}

func TestProjectLTVSingleOrder(t *testing.T) {
	now := time.Now()

	c := &domain.Customer{
		TotalOrders: 1,
		TotalSpent:  150_000,
		LastOrderAt: daysAgo(now, 5),
	}

	proj := ProjectLTV(c, now)

	assert.Zero(t, proj.OneYear)
	assert.Zero(t, proj.ThreeYear)
}

func TestAssessChurn(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Orders every 10 days, last one 25 days ago: more than twice the
	// normal gap.
	c := &domain.Customer{
		ID:           "c1",
		Name:         "Ibu Sari",
		TotalOrders:  10,
		TotalSpent:   1_000_000,
		FirstOrderAt: daysAgo(now, 115),
		LastOrderAt:  daysAgo(now, 25),
	}

	assessment := AssessChurn(c, now)

	assert.Equal(t, RiskHigh, assessment.RiskLevel)
	assert.Equal(t, 25, assessment.DaysSinceLastOrder)
	assert.NotEmpty(t, assessment.Recommendation)
}

func TestAssessChurnMediumAndLow(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	medium := &domain.Customer{
		TotalOrders:  10,
		TotalSpent:   1_000_000,
		FirstOrderAt: daysAgo(now, 106),
		LastOrderAt:  daysAgo(now, 16),
	}
	assert.Equal(t, RiskMedium, AssessChurn(medium, now).RiskLevel)

	low := &domain.Customer{
		TotalOrders:  10,
		TotalSpent:   1_000_000,
		FirstOrderAt: daysAgo(now, 95),
		LastOrderAt:  daysAgo(now, 5),
	}
	assert.Equal(t, RiskLow, AssessChurn(low, now).RiskLevel)
}
