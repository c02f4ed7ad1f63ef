package inventory

import (
	"math"

	"github.com/kuedapur/backend-go/internal/domain"
)

const (
	orderingCostPerOrder = 50000 // Rp per order (delivery, admin)
	holdingCostRate      = 0.2   // fraction of item value per year
	carryingCostRate     = 0.25
)

// EconomicOrderQuantity computes a simplified EOQ from monthly usage,
// floored at the ingredient's minimum stock.
func EconomicOrderQuantity(ing *domain.Ingredient, monthlyUsage float64) float64 {
	annualDemand := monthlyUsage * 12
	holdingCost := ing.PricePerUnit * holdingCostRate
	if holdingCost <= 0 {
		return ing.MinStock
	}

	eoq := math.Sqrt(2 * annualDemand * orderingCostPerOrder / holdingCost)
	return math.Max(eoq, ing.MinStock)
}

// DaysRemaining estimates how many days of stock remain at the given
// monthly usage rate. Returns +Inf when there is no usage.
func DaysRemaining(currentStock, monthlyUsage float64) float64 {
	dailyUsage := monthlyUsage / 30
	if dailyUsage <= 0 {
		return math.Inf(1)
	}
	return currentStock / dailyUsage
}

// CarryingCost estimates the monthly cost of holding an ingredient's
// current stock.
type CarryingCost struct {
	InventoryValue      float64 `json:"inventory_value"`
	AnnualCarryingCost  float64 `json:"annual_carrying_cost"`
	MonthlyCarryingCost float64 `json:"monthly_carrying_cost"`
}

func EstimateCarryingCost(ing *domain.Ingredient) CarryingCost {
	value := ing.CurrentStock * ing.PricePerUnit
	annual := value * carryingCostRate
	return CarryingCost{
		InventoryValue:      value,
		AnnualCarryingCost:  annual,
		MonthlyCarryingCost: annual / 12,
	}
}
