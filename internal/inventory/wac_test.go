package inventory

import (
	"testing"

	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestWeightedAverageCost(t *testing.T) {
	ing := &domain.Ingredient{ID: "i1", PricePerUnit: 12000}

	transactions := []domain.StockTransaction{
		{IngredientID: "i1", Type: domain.TransactionPurchase, Quantity: 10, UnitPrice: 12000},
		{IngredientID: "i1", Type: domain.TransactionPurchase, Quantity: 5, UnitPrice: 15000},
	}

	result := WeightedAverageCost(ing, transactions)

	// (10*12000 + 5*15000) / 15 = 13000
	assert.Equal(t, 13000.0, result.WeightedAveragePrice)
	assert.Equal(t, 15.0, result.TotalQuantity)
	assert.Equal(t, 2, result.PurchaseCount)
}

func TestWeightedAverageCostRoundsToCents(t *testing.T) {
	ing := &domain.Ingredient{ID: "i1"}

	transactions := []domain.StockTransaction{
		{IngredientID: "i1", Type: domain.TransactionPurchase, Quantity: 3, UnitPrice: 10000},
		{IngredientID: "i1", Type: domain.TransactionPurchase, Quantity: 4, UnitPrice: 11000},
	}

	result := WeightedAverageCost(ing, transactions)

	assert.Equal(t, 10571.43, result.WeightedAveragePrice)
}

func TestWeightedAverageCostIgnoresNonPurchases(t *testing.T) {
	ing := &domain.Ingredient{ID: "i1", PricePerUnit: 9000}

	transactions := []domain.StockTransaction{
		{IngredientID: "i1", Type: domain.TransactionUsage, Quantity: 5, UnitPrice: 15000},
		{IngredientID: "i2", Type: domain.TransactionPurchase, Quantity: 5, UnitPrice: 15000},
		{IngredientID: "i1", Type: domain.TransactionPurchase, Quantity: 0, UnitPrice: 15000},
	}

	result := WeightedAverageCost(ing, transactions)

	// No usable purchases, fall back to the list price.
	assert.Equal(t, 9000.0, result.WeightedAveragePrice)
	assert.Equal(t, 0, result.PurchaseCount)
}
