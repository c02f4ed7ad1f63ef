package inventory

import (
	"testing"

	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatus(t *testing.T) {
	assert.Equal(t, StatusCritical, StockStatus(40, 100))
	assert.Equal(t, StatusCritical, StockStatus(50, 100))
	assert.Equal(t, StatusLow, StockStatus(100, 100))
	assert.Equal(t, StatusAdequate, StockStatus(150, 100))
	assert.Equal(t, StatusAdequate, StockStatus(300, 100))
	assert.Equal(t, StatusOverstocked, StockStatus(301, 100))
}

func TestIsStockHealthy(t *testing.T) {
	assert.True(t, IsStockHealthy(&domain.Ingredient{CurrentStock: 90, MinStock: 100, ReorderPoint: 80}))
	assert.False(t, IsStockHealthy(&domain.Ingredient{CurrentStock: 80, MinStock: 100, ReorderPoint: 80}))

	// Without a reorder point the minimum stock is the threshold.
	assert.True(t, IsStockHealthy(&domain.Ingredient{CurrentStock: 101, MinStock: 100}))
	assert.False(t, IsStockHealthy(&domain.Ingredient{CurrentStock: 100, MinStock: 100}))
}

func TestBuildAlertPayload(t *testing.T) {
	ing := &domain.Ingredient{
		ID:           "i1",
		Name:         "Tepung Terigu",
		Unit:         "kg",
		MinStock:     100,
		ReorderPoint: 80,
	}

	ing.CurrentStock = 0
	payload := BuildAlertPayload(ing)
	require.NotNil(t, payload)
	assert.Equal(t, domain.InventoryAlertOutOfStock, payload.AlertType)
	assert.Equal(t, domain.SeverityCritical, payload.Severity)
	assert.Contains(t, payload.Message, "habis")

	ing.CurrentStock = 70
	payload = BuildAlertPayload(ing)
	require.NotNil(t, payload)
	assert.Equal(t, domain.InventoryAlertReorderNeeded, payload.AlertType)
	assert.Equal(t, domain.SeverityHigh, payload.Severity)

	ing.CurrentStock = 90
	payload = BuildAlertPayload(ing)
	require.NotNil(t, payload)
	assert.Equal(t, domain.InventoryAlertLowStock, payload.AlertType)
	assert.Equal(t, domain.SeverityMedium, payload.Severity)

	ing.CurrentStock = 150
	assert.Nil(t, BuildAlertPayload(ing))
}
