package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kuedapur/backend-go/internal/costing"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/service"
)

type RecipeHandler struct {
	costing   *service.CostingService
	snapshots *service.SnapshotService
}

func NewRecipeHandler(costing *service.CostingService, snapshots *service.SnapshotService) *RecipeHandler {
	return &RecipeHandler{costing: costing, snapshots: snapshots}
}

type recipeIngredientRequest struct {
	IngredientID string  `json:"ingredient_id" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	Unit         string  `json:"unit"`
}

type recipeRequest struct {
	Name         string                    `json:"name" binding:"required"`
	Servings     int                       `json:"servings" binding:"required,gt=0"`
	SellingPrice float64                   `json:"selling_price" binding:"gte=0"`
	IsActive     *bool                     `json:"is_active"`
	Ingredients  []recipeIngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
}

func (req *recipeRequest) toDomain() *domain.Recipe {
	recipe := &domain.Recipe{
		Name:         req.Name,
		Servings:     req.Servings,
		SellingPrice: req.SellingPrice,
		IsActive:     true,
	}
	if req.IsActive != nil {
		recipe.IsActive = *req.IsActive
	}
	for _, ri := range req.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, domain.RecipeIngredient{
			IngredientID: ri.IngredientID,
			Quantity:     ri.Quantity,
			Unit:         ri.Unit,
		})
	}
	return recipe
}

// overheadRequest carries the non-material cost inputs for an HPP
// calculation.
type overheadRequest struct {
	Labor       float64 `json:"labor" binding:"gte=0"`
	Operational float64 `json:"operational" binding:"gte=0"`
	Packaging   float64 `json:"packaging" binding:"gte=0"`
	Other       float64 `json:"other" binding:"gte=0"`
}

func (req overheadRequest) toOverhead() costing.Overhead {
	return costing.Overhead{
		Labor:       req.Labor,
		Operational: req.Operational,
		Packaging:   req.Packaging,
		Other:       req.Other,
	}
}

func (h *RecipeHandler) List(c *gin.Context) {
	filter := parseListFilter(c)

	recipes, total, err := h.costing.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(recipes, total, filter))
}

func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.costing.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Create(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	recipe := req.toDomain()
	if err := h.costing.CreateRecipe(c.Request.Context(), recipe); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) Update(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	recipe := req.toDomain()
	recipe.ID = c.Param("id")
	if err := h.costing.UpdateRecipe(c.Request.Context(), recipe); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.costing.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CalculateHpp computes the cost breakdown for a recipe. The request body is
// optional; without one the overhead is zero and HPP is material cost only.
func (h *RecipeHandler) CalculateHpp(c *gin.Context) {
	var req overheadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}
	}

	calc, err := h.costing.CalculateHpp(c.Request.Context(), c.Param("id"), req.toOverhead())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, calc)
}

type priceRequest struct {
	TargetMarginPct float64         `json:"target_margin_pct" binding:"required,gte=0,lt=100"`
	Overhead        overheadRequest `json:"overhead"`
}

func (h *RecipeHandler) RecommendPrice(c *gin.Context) {
	var req priceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	rec, err := h.costing.RecommendPrice(c.Request.Context(), c.Param("id"), req.TargetMarginPct, req.Overhead.toOverhead())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *RecipeHandler) ListSnapshots(c *gin.Context) {
	to := time.Now().UTC()
	from := to.AddDate(0, -1, 0)

	if v := c.Query("from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			from = parsed
		}
	}
	if v := c.Query("to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			to = parsed
		}
	}

	snapshots, err := h.snapshots.ListSnapshots(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": snapshots})
}

// CreateSnapshot takes today's snapshot for one recipe. Running it twice on
// the same day returns the existing snapshot with created=false.
func (h *RecipeHandler) CreateSnapshot(c *gin.Context) {
	var req overheadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}
	}

	snap, created, err := h.snapshots.CreateSnapshot(c.Request.Context(), c.Param("id"), req.toOverhead())
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"snapshot": snap, "created": created})
}
