package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/service"
)

type IngredientHandler struct {
	service *service.InventoryService
}

func NewIngredientHandler(service *service.InventoryService) *IngredientHandler {
	return &IngredientHandler{service: service}
}

type ingredientRequest struct {
	Name         string  `json:"name" binding:"required"`
	Unit         string  `json:"unit" binding:"required"`
	CurrentStock float64 `json:"current_stock" binding:"gte=0"`
	MinStock     float64 `json:"min_stock" binding:"gte=0"`
	ReorderPoint float64 `json:"reorder_point" binding:"gte=0"`
	PricePerUnit float64 `json:"price_per_unit" binding:"gte=0"`
	Supplier     string  `json:"supplier"`
	LeadTimeDays int     `json:"lead_time_days" binding:"gte=0"`
	IsActive     *bool   `json:"is_active"`
}

func (req *ingredientRequest) toDomain() *domain.Ingredient {
	ing := &domain.Ingredient{
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		ReorderPoint: req.ReorderPoint,
		PricePerUnit: req.PricePerUnit,
		Supplier:     req.Supplier,
		LeadTimeDays: req.LeadTimeDays,
		IsActive:     true,
	}
	if req.IsActive != nil {
		ing.IsActive = *req.IsActive
	}
	return ing
}

func (h *IngredientHandler) List(c *gin.Context) {
	filter := parseListFilter(c)

	ingredients, total, err := h.service.ListIngredients(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(ingredients, total, filter))
}

func (h *IngredientHandler) Get(c *gin.Context) {
	ing, err := h.service.GetIngredient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *IngredientHandler) Create(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ing := req.toDomain()
	if err := h.service.CreateIngredient(c.Request.Context(), ing); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ing)
}

func (h *IngredientHandler) Update(c *gin.Context) {
	var req ingredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	ing := req.toDomain()
	ing.ID = c.Param("id")
	if err := h.service.UpdateIngredient(c.Request.Context(), ing); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ing)
}

func (h *IngredientHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteIngredient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type purchaseRequest struct {
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
	Reference string  `json:"reference"`
}

func (h *IngredientHandler) RecordPurchase(c *gin.Context) {
	var req purchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	tx, err := h.service.RecordPurchase(c.Request.Context(), c.Param("id"), req.Quantity, req.UnitPrice, req.Reference)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

func (h *IngredientHandler) Planning(c *gin.Context) {
	monthlyUsage, _ := strconv.ParseFloat(c.Query("monthly_usage"), 64)

	summary, err := h.service.Planning(c.Request.Context(), c.Param("id"), monthlyUsage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *IngredientHandler) ListTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	transactions, err := h.service.ListTransactions(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": transactions})
}
