package inventory

import "math"

// Reorder priorities, from least to most urgent.
const (
	PriorityLow      = "low"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// reorderPointFactor places the reorder trigger at 80% of minimum stock.
const reorderPointFactor = 0.8

// Recommendation is the output of the reorder ladder for one ingredient.
type Recommendation struct {
	ShouldReorder       bool    `json:"should_reorder"`
	RecommendedQuantity int     `json:"recommended_quantity"`
	Priority            string  `json:"priority"`
	Reason              string  `json:"reason"`
	ReorderPoint        float64 `json:"reorder_point"`
}

// reorderRule is one tier of the ladder: the first matching rule wins.
type reorderRule struct {
	matches  func(currentStock, minStock float64) bool
	priority string
	reason   string
	quantity func(minStock float64) float64
}

// The ladder is ordered most-severe first so evaluation is explicitly
// top-down rather than relying on an override chain of if statements.
var reorderLadder = []reorderRule{
	{
		matches:  func(cur, _ float64) bool { return cur <= 0 },
		priority: PriorityCritical,
		reason:   "Out of stock",
		quantity: func(min float64) float64 { return math.Max(min*4, 200) },
	},
	{
		matches:  func(cur, min float64) bool { return cur <= min*0.5 },
		priority: PriorityCritical,
		reason:   "Stock critically low",
		quantity: func(min float64) float64 { return math.Max(min*3, 100) },
	},
	{
		matches:  func(cur, min float64) bool { return cur <= min },
		priority: PriorityHigh,
		reason:   "Stock below minimum level",
		quantity: func(min float64) float64 { return math.Max(min*2, 50) },
	},
	{
		matches:  func(_, _ float64) bool { return true },
		priority: PriorityLow,
		reason:   "Stock at reorder level",
		quantity: func(min float64) float64 { return math.Max(min*2, 50) },
	},
}

// Recommend runs the reorder ladder for an ingredient's stock levels.
// Reordering triggers at 80% of minimum stock; the quantity tiers escalate
// as stock falls below the minimum, half the minimum, and zero.
func Recommend(currentStock, minStock float64) Recommendation {
	reorderPoint := minStock * reorderPointFactor

	rec := Recommendation{
		ShouldReorder: currentStock <= reorderPoint,
		ReorderPoint:  reorderPoint,
	}

	for _, rule := range reorderLadder {
		if rule.matches(currentStock, minStock) {
			rec.Priority = rule.priority
			rec.Reason = rule.reason
			rec.RecommendedQuantity = int(math.Round(rule.quantity(minStock)))
			break
		}
	}

	return rec
}
