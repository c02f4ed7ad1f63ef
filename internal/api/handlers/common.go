package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kuedapur/backend-go/internal/domain"
	"github.com/kuedapur/backend-go/internal/service"
)

func parseListFilter(c *gin.Context) domain.ListFilter {
	filter := domain.ListFilter{
		Page:     1,
		PageSize: 50,
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && page > 0 {
		filter.Page = page
	}

	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "50")); err == nil && size > 0 {
		filter.PageSize = size
	}

	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.ActiveOnly = c.Query("active_only") == "true"

	return filter
}

// respondError maps service errors onto HTTP statuses. ErrNotFound becomes a
// 404, everything else a 500.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// listResponse is the uniform paginated list envelope.
func listResponse(items interface{}, total int, filter domain.ListFilter) gin.H {
	return gin.H{
		"data":      items,
		"total":     total,
		"page":      filter.Page,
		"page_size": filter.Limit(),
	}
}
