package costing

import (
	"testing"

	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestCalculate(t *testing.T) {
	calc := NewCalculator()

	recipe := &domain.Recipe{
		ID:       "r1",
		Name:     "Bolu Pandan",
		Servings: 10,
		Ingredients: []domain.RecipeIngredient{
			{IngredientID: "i1", IngredientName: "Tepung Terigu", Quantity: 0.5, Unit: "kg", PricePerUnit: 12000},
			{IngredientID: "i2", IngredientName: "Gula Pasir", Quantity: 0.25, Unit: "kg", PricePerUnit: 8000},
		},
	}
	overhead := Overhead{Labor: 500, Operational: 300, Packaging: 150, Other: 50}

	result := calc.Calculate(recipe, overhead)

	assert.Equal(t, 8000.0, result.MaterialCost)
	assert.Equal(t, 1000.0, result.OverheadCost)
	assert.Equal(t, 9000.0, result.TotalHPP)
	assert.Equal(t, 900.0, result.CostPerServing)
	require.Len(t, result.Breakdown, 2)
	assert.Equal(t, 6000.0, result.Breakdown[0].TotalCost)
	assert.Equal(t, 2000.0, result.Breakdown[1].TotalCost)
	assert.Empty(t, result.Warnings)
}

func TestCalculatePrefersWeightedAverageCost(t *testing.T) {
	calc := NewCalculator()

	recipe := &domain.Recipe{
		Servings: 1,
		Ingredients: []domain.RecipeIngredient{
			{IngredientID: "i1", Quantity: 2, PricePerUnit: 10000, WeightedAverageCost: floatPtr(9500)},
		},
	}

	result := calc.Calculate(recipe, Overhead{})

	assert.Equal(t, 19000.0, result.MaterialCost)
}

func TestCalculateZeroPricedIngredientWarns(t *testing.T) {
	calc := NewCalculator()

	recipe := &domain.Recipe{
		Servings: 1,
		Ingredients: []domain.RecipeIngredient{
			{IngredientID: "i1", IngredientName: "Vanili", Quantity: 1, PricePerUnit: 0},
		},
	}

	result := calc.Calculate(recipe, Overhead{})

	assert.Equal(t, 0.0, result.MaterialCost)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Vanili")
}

func TestCalculateDefaultsServingsToOne(t *testing.T) {
	calc := NewCalculator()

	recipe := &domain.Recipe{
		Servings: 0,
		Ingredients: []domain.RecipeIngredient{
			{IngredientID: "i1", Quantity: 1, PricePerUnit: 5000},
		},
	}

	result := calc.Calculate(recipe, Overhead{})

	assert.Equal(t, 5000.0, result.CostPerServing)
}

func TestRecommendedPrice(t *testing.T) {
	price, err := RecommendedPrice(9000, 40)
	require.NoError(t, err)
	assert.InDelta(t, 15000, price, 0.001)

	_, err = RecommendedPrice(9000, 100)
	assert.Error(t, err)

	_, err = RecommendedPrice(9000, -5)
	assert.Error(t, err)
}

func TestMarginPercentage(t *testing.T) {
	assert.InDelta(t, 40.0, MarginPercentage(15000, 9000), 0.001)
	assert.Equal(t, 0.0, MarginPercentage(0, 9000))
}
