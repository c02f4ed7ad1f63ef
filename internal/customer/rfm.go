package customer

import (
	"time"

	"github.com/kuedapur/backend-go/internal/domain"
)

// Customer segments, by decreasing RFM score.
const (
	SegmentChampions = "Champions"
	SegmentLoyal     = "Loyal"
	SegmentPotential = "Potential"
	SegmentAtRisk    = "At Risk"
	SegmentLost      = "Lost"
)

const lostAfterDays = 90

// RFMScore holds the 1-5 recency/frequency/monetary buckets and the derived
// segment for a customer.
type RFMScore struct {
	Recency   int    `json:"recency"`
	Frequency int    `json:"frequency"`
	Monetary  int    `json:"monetary"`
	Total     int    `json:"total"`
	Segment   string `json:"segment"`
}

// Score buckets a customer's order history on fixed breakpoints. Customers
// with no delivered order in 90+ days are classified Lost regardless of the
// other scores.
func Score(c *domain.Customer, now time.Time) RFMScore {
	days := daysSinceLastOrder(c, now)

	score := RFMScore{
		Recency:   recencyScore(days),
		Frequency: frequencyScore(c.TotalOrders),
		Monetary:  monetaryScore(c.TotalSpent),
	}
	score.Total = score.Recency + score.Frequency + score.Monetary

	switch {
	case days > lostAfterDays:
		score.Segment = SegmentLost
	case score.Total >= 12:
		score.Segment = SegmentChampions
	case score.Total >= 10:
		score.Segment = SegmentLoyal
	case score.Total >= 7:
		score.Segment = SegmentPotential
	default:
		score.Segment = SegmentAtRisk
	}

	return score
}

func daysSinceLastOrder(c *domain.Customer, now time.Time) int {
	if c.LastOrderAt == nil {
		return lostAfterDays + 1
	}
	return int(now.Sub(*c.LastOrderAt).Hours() / 24)
}

func recencyScore(days int) int {
	switch {
	case days < 30:
		return 5
	case days < 60:
		return 4
	case days < 90:
		return 3
	case days < 180:
		return 2
	default:
		return 1
	}
}

func frequencyScore(orders int) int {
	switch {
	case orders > 20:
		return 5
	case orders > 10:
		return 4
	case orders > 5:
		return 3
	case orders > 2:
		return 2
	default:
		return 1
	}
}

func monetaryScore(spent float64) int {
	switch {
	case spent > 5_000_000:
		return 5
	case spent > 2_000_000:
		return 4
	case spent > 1_000_000:
		return 3
	case spent > 500_000:
		return 2
	default:
		return 1
	}
}
