package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/service"
)

type SnapshotHandler struct {
	service *service.SnapshotService
}

func NewSnapshotHandler(service *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{service: service}
}

// Run triggers the daily snapshot batch over all active recipes.
func (h *SnapshotHandler) Run(c *gin.Context) {
	result, err := h.service.RunDailySnapshots(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SnapshotHandler) ListAlerts(c *gin.Context) {
	filter := domain.AlertFilter{
		ListFilter: parseListFilter(c),
		RecipeID:   strings.TrimSpace(c.Query("recipe_id")),
		Severity:   strings.TrimSpace(c.Query("severity")),
		UnreadOnly: c.Query("unread_only") == "true",
	}

	alerts, err := h.service.ListAlerts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": alerts})
}

func (h *SnapshotHandler) MarkAlertRead(c *gin.Context) {
	if err := h.service.MarkAlertRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

func (h *SnapshotHandler) DismissAlert(c *gin.Context) {
	if err := h.service.DismissAlert(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "dismissed"})
}
