package customer

import (
	"testing"
	"time"

	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func daysAgo(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, -days)
	return &t
}

func TestScoreChampion(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	c := &domain.Customer{
		TotalOrders: 25,
		TotalSpent:  6_000_000,
		LastOrderAt: daysAgo(now, 10),
	}

	score := Score(c, now)

	assert.Equal(t, 5, score.Recency)
	assert.Equal(t, 5, score.Frequency)
	assert.Equal(t, 5, score.Monetary)
	assert.Equal(t, 15, score.Total)
	assert.Equal(t, SegmentChampions, score.Segment)
}

func TestScoreSegmentBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		orders  int
		spent   float64
		daysAgo int
		segment string
	}{
		{"loyal", 12, 1_500_000, 45, SegmentLoyal},
		{"potential", 6, 600_000, 75, SegmentPotential},
		{"at risk", 1, 100_000, 85, SegmentAtRisk},
		{"lost overrides score", 25, 6_000_000, 120, SegmentLost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &domain.Customer{
				TotalOrders: tt.orders,
				TotalSpent:  tt.spent,
				LastOrderAt: daysAgo(now, tt.daysAgo),
			}
			assert.Equal(t, tt.segment, Score(c, now).Segment)
		})
	}
}

func TestScoreNoOrders(t *testing.T) {
	now := time.Now()
	score := Score(&domain.Customer{}, now)

	assert.Equal(t, 2, score.Recency)
	assert.Equal(t, 1, score.Frequency)
	assert.Equal(t, 1, score.Monetary)
	assert.Equal(t, SegmentLost, score.Segment)
}
