package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name         string
		currentStock float64
		minStock     float64
		should       bool
		priority     string
		reason       string
		quantity     int
	}{
		{
			name:         "out of stock",
			currentStock: 0,
			minStock:     100,
			should:       true,
			priority:     PriorityCritical,
			reason:       "Out of stock",
			quantity:     400,
		},
		{
			name:         "out of stock small minimum uses floor",
			currentStock: 0,
			minStock:     10,
			should:       true,
			priority:     PriorityCritical,
			reason:       "Out of stock",
			quantity:     200,
		},
		{
			name:         "critically low at half minimum",
			currentStock: 50,
			minStock:     100,
			should:       true,
			priority:     PriorityCritical,
			reason:       "Stock critically low",
			quantity:     300,
		},
		{
			name:         "below minimum",
			currentStock: 75,
			minStock:     100,
			should:       true,
			priority:     PriorityHigh,
			reason:       "Stock below minimum level",
			quantity:     200,
		},
		{
			name:         "exactly at reorder point",
			currentStock: 80,
			minStock:     100,
			should:       true,
			priority:     PriorityHigh,
			reason:       "Stock below minimum level",
			quantity:     200,
		},
		{
			name:         "just above reorder point",
			currentStock: 81,
			minStock:     100,
			should:       false,
			priority:     PriorityHigh,
			reason:       "Stock below minimum level",
			quantity:     200,
		},
		{
			name:         "healthy stock",
			currentStock: 150,
			minStock:     100,
			should:       false,
			priority:     PriorityLow,
			reason:       "Stock at reorder level",
			quantity:     200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Recommend(tt.currentStock, tt.minStock)

			assert.Equal(t, tt.should, rec.ShouldReorder)
			assert.Equal(t, tt.priority, rec.Priority)
			assert.Equal(t, tt.reason, rec.Reason)
			assert.Equal(t, tt.quantity, rec.RecommendedQuantity)
		})
	}
}

func TestRecommendReorderPoint(t *testing.T) {
	rec := Recommend(90, 100)
	assert.Equal(t, 80.0, rec.ReorderPoint)
}
