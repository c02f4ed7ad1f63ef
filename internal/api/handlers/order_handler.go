package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/service"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

type orderItemRequest struct {
	RecipeID  string  `json:"recipe_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"required,gte=0"`
}

type orderRequest struct {
	CustomerID   string             `json:"customer_id" binding:"required"`
	DeliveryDate *time.Time         `json:"delivery_date"`
	Notes        string             `json:"notes"`
	Items        []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (req *orderRequest) toDomain() *domain.Order {
	o := &domain.Order{
		CustomerID:   req.CustomerID,
		DeliveryDate: req.DeliveryDate,
		Notes:        req.Notes,
	}
	for _, item := range req.Items {
		o.Items = append(o.Items, domain.OrderItem{
			RecipeID:  item.RecipeID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return o
}

func (h *OrderHandler) List(c *gin.Context) {
	filter := domain.OrderFilter{
		ListFilter: parseListFilter(c),
		CustomerID: strings.TrimSpace(c.Query("customer_id")),
		Status:     strings.ToUpper(strings.TrimSpace(c.Query("status"))),
	}

	orders, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(orders, total, filter.ListFilter))
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	order := req.toDomain()
	if err := h.service.Create(c.Request.Context(), order); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	order := req.toDomain()
	order.ID = c.Param("id")
	if err := h.service.Update(c.Request.Context(), order); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// WhatsAppMessage renders a message template for the order and returns the
// wa.me link.
func (h *OrderHandler) WhatsAppMessage(c *gin.Context) {
	message, err := h.service.BuildWhatsAppMessage(c.Request.Context(), c.Param("id"), c.Param("template"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}
