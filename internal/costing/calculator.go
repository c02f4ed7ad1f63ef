package costing

import (
	"fmt"

	"github.com/kuedapur/backend-go/internal/domain"
)

// Overhead holds the non-material cost inputs for a recipe batch.
type Overhead struct {
	Labor       float64 `json:"labor"`
	Operational float64 `json:"operational"`
	Packaging   float64 `json:"packaging"`
	Other       float64 `json:"other"`
}

// Total sums all overhead components.
func (o Overhead) Total() float64 {
	return o.Labor + o.Operational + o.Packaging + o.Other
}

// LineCost is the cost contribution of one ingredient line.
type LineCost struct {
	IngredientID string  `json:"ingredient_id"`
	Name         string  `json:"ingredient_name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unit_price"`
	TotalCost    float64 `json:"total_cost"`
}

// Result is a full HPP calculation for one recipe batch.
// Warnings flag data problems (zero-priced ingredients) that under-cost the
// recipe without failing the calculation.
type Result struct {
	MaterialCost   float64    `json:"material_cost"`
	OverheadCost   float64    `json:"overhead_cost"`
	TotalHPP       float64    `json:"total_hpp"`
	CostPerServing float64    `json:"cost_per_serving"`
	Breakdown      []LineCost `json:"material_breakdown"`
	Warnings       []string   `json:"warnings,omitempty"`
}

// Calculator computes HPP (Harga Pokok Produksi) for recipes.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate rolls up material cost from the recipe's ingredient lines and
// adds overhead. A line with no usable price contributes zero and is noted
// in Warnings. The WAC unit price is preferred over the list price.
func (c *Calculator) Calculate(recipe *domain.Recipe, overhead Overhead) Result {
	result := Result{
		Breakdown: make([]LineCost, 0, len(recipe.Ingredients)),
	}

	for _, ri := range recipe.Ingredients {
		unitPrice := UnitPrice(ri)
		lineCost := ri.Quantity * unitPrice

		result.Breakdown = append(result.Breakdown, LineCost{
			IngredientID: ri.IngredientID,
			Name:         ri.IngredientName,
			Quantity:     ri.Quantity,
			Unit:         ri.Unit,
			UnitPrice:    unitPrice,
			TotalCost:    lineCost,
		})
		result.MaterialCost += lineCost

		if unitPrice <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("ingredient %s has no unit price, contributes zero cost", ri.IngredientName))
		}
	}

	result.OverheadCost = overhead.Total()
	result.TotalHPP = result.MaterialCost + result.OverheadCost

	servings := recipe.Servings
	if servings <= 0 {
		servings = 1
	}
	result.CostPerServing = result.TotalHPP / float64(servings)

	return result
}

// UnitPrice resolves the price for an ingredient line, preferring the
// weighted average cost from purchase history over the list price.
func UnitPrice(ri domain.RecipeIngredient) float64 {
	if ri.WeightedAverageCost != nil && *ri.WeightedAverageCost > 0 {
		return *ri.WeightedAverageCost
	}
	return ri.PricePerUnit
}

// RecommendedPrice derives a selling price from HPP and a target margin
// percentage using the margin-on-price convention:
// price = hpp / (1 - margin/100).
func RecommendedPrice(hpp, marginPct float64) (float64, error) {
	if marginPct < 0 || marginPct >= 100 {
		return 0, fmt.Errorf("margin percentage must be in [0, 100): got %.2f", marginPct)
	}
	return hpp / (1 - marginPct/100), nil
}

// MarginPercentage computes the margin of an existing selling price over
// HPP. A zero selling price yields zero.
func MarginPercentage(sellingPrice, hpp float64) float64 {
	if sellingPrice <= 0 {
		return 0
	}
	return (sellingPrice - hpp) / sellingPrice * 100
}
