package service

import (
	"context"

	"github.com/kuedapur/backend-go/internal/costing"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// HppCalculation is the costing result for one recipe, including the margin
// of the current selling price over the computed HPP per serving.
type HppCalculation struct {
	RecipeID         string         `json:"recipe_id"`
	RecipeName       string         `json:"recipe_name"`
	Servings         int            `json:"servings"`
	Result           costing.Result `json:"result"`
	HppPerServing    float64        `json:"hpp_per_serving"`
	SellingPrice     float64        `json:"selling_price"`
	MarginPercentage float64        `json:"margin_percentage"`
}

// PriceRecommendation derives a selling price for a target margin.
type PriceRecommendation struct {
	RecipeID         string  `json:"recipe_id"`
	RecipeName       string  `json:"recipe_name"`
	HppPerServing    float64 `json:"hpp_per_serving"`
	TargetMarginPct  float64 `json:"target_margin_pct"`
	RecommendedPrice float64 `json:"recommended_price"`
	CurrentPrice     float64 `json:"current_price"`
}

type CostingService struct {
	recipes repository.RecipeRepository
	calc    *costing.Calculator
}

func NewCostingService(recipes repository.RecipeRepository) *CostingService {
	return &CostingService{
		recipes: recipes,
		calc:    costing.NewCalculator(),
	}
}

// CalculateHpp computes the full cost breakdown for a recipe and persists
// the resulting cost per serving on the recipe record.
func (s *CostingService) CalculateHpp(ctx context.Context, recipeID string, overhead costing.Overhead) (*HppCalculation, error) {
	recipe, err := s.recipes.GetWithIngredients(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrNotFound
	}

	result := s.calc.Calculate(recipe, overhead)
	hpp := result.CostPerServing

	if err := s.recipes.UpdateCost(ctx, recipe.ID, hpp); err != nil {
		log.Warn().Err(err).Str("recipe_id", recipe.ID).Msg("costing: failed to persist recipe cost")
	}

	return &HppCalculation{
		RecipeID:         recipe.ID,
		RecipeName:       recipe.Name,
		Servings:         recipe.Servings,
		Result:           result,
		HppPerServing:    hpp,
		SellingPrice:     recipe.SellingPrice,
		MarginPercentage: costing.MarginPercentage(recipe.SellingPrice, hpp),
	}, nil
}

// RecommendPrice suggests a selling price for a recipe at the target margin,
// priced off the latest computed HPP.
func (s *CostingService) RecommendPrice(ctx context.Context, recipeID string, marginPct float64, overhead costing.Overhead) (*PriceRecommendation, error) {
	calc, err := s.CalculateHpp(ctx, recipeID, overhead)
	if err != nil {
		return nil, err
	}

	price, err := costing.RecommendedPrice(calc.HppPerServing, marginPct)
	if err != nil {
		return nil, err
	}

	return &PriceRecommendation{
		RecipeID:         calc.RecipeID,
		RecipeName:       calc.RecipeName,
		HppPerServing:    calc.HppPerServing,
		TargetMarginPct:  marginPct,
		RecommendedPrice: price,
		CurrentPrice:     calc.SellingPrice,
	}, nil
}

// ListRecipes and the CRUD passthroughs keep handlers thin.

func (s *CostingService) ListRecipes(ctx context.Context, filter domain.ListFilter) ([]domain.Recipe, int, error) {
	return s.recipes.List(ctx, filter)
}

func (s *CostingService) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, err := s.recipes.GetWithIngredients(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, ErrNotFound
	}
	return recipe, nil
}

func (s *CostingService) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	return s.recipes.Create(ctx, r)
}

func (s *CostingService) UpdateRecipe(ctx context.Context, r *domain.Recipe) error {
	return s.recipes.Update(ctx, r)
}

func (s *CostingService) DeleteRecipe(ctx context.Context, id string) error {
	return s.recipes.Delete(ctx, id)
}
