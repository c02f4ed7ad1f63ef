package inventory

import (
	"math"

	"github.com/kuedapur/backend-go/internal/domain"
)

// WacResult is the weighted average cost of an ingredient over its purchase
// history.
type WacResult struct {
	WeightedAveragePrice float64 `json:"weighted_average_price"`
	TotalQuantity        float64 `json:"total_quantity"`
	TotalValue           float64 `json:"total_value"`
	PurchaseCount        int     `json:"purchase_count"`
}

// WeightedAverageCost computes the average unit price across purchase
// transactions, weighted by quantity. When there are no usable purchases the
// ingredient's list price is returned unchanged.
func WeightedAverageCost(ing *domain.Ingredient, transactions []domain.StockTransaction) WacResult {
	var totalQuantity, totalValue float64
	count := 0

	for _, t := range transactions {
		if t.IngredientID != ing.ID || t.Type != domain.TransactionPurchase {
			continue
		}
		if t.Quantity <= 0 || t.UnitPrice <= 0 {
			continue
		}

		quantity := math.Abs(t.Quantity)
		totalQuantity += quantity
		totalValue += quantity * t.UnitPrice
		count++
	}

	if totalQuantity == 0 {
		return WacResult{WeightedAveragePrice: ing.PricePerUnit}
	}

	wac := totalValue / totalQuantity
	return WacResult{
		WeightedAveragePrice: math.Round(wac*100) / 100,
		TotalQuantity:        totalQuantity,
		TotalValue:           totalValue,
		PurchaseCount:        count,
	}
}
