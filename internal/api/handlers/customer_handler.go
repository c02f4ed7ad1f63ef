package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/service"
)

type CustomerHandler struct {
	service *service.CustomerService
}

func NewCustomerHandler(service *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

type customerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,idphone"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	filter := parseListFilter(c)

	customers, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(customers, total, filter))
}

func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	customer := &domain.Customer{Name: req.Name, Phone: req.Phone}
	if err := h.service.Create(c.Request.Context(), customer); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	customer := &domain.Customer{ID: c.Param("id"), Name: req.Name, Phone: req.Phone}
	if err := h.service.Update(c.Request.Context(), customer); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Insights(c *gin.Context) {
	insights, err := h.service.Insights(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, insights)
}

func (h *CustomerHandler) AtRisk(c *gin.Context) {
	atRisk, err := h.service.AtRisk(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": atRisk})
}
