package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kuedapur/backend-go/internal/whatsapp"
)

type WhatsAppHandler struct{}

func NewWhatsAppHandler() *WhatsAppHandler {
	return &WhatsAppHandler{}
}

func (h *WhatsAppHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": whatsapp.DefaultTemplates()})
}

type renderRequest struct {
	TemplateID string            `json:"template_id" binding:"required"`
	Phone      string            `json:"phone" binding:"required"`
	Variables  map[string]string `json:"variables"`
}

// Render fills a template with arbitrary variables and builds the wa.me
// link, for messages not tied to an order.
func (h *WhatsAppHandler) Render(c *gin.Context) {
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	tpl, ok := whatsapp.FindTemplate(req.TemplateID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
		return
	}

	message := tpl.Render(req.Variables)
	c.JSON(http.StatusOK, gin.H{
		"template_id": tpl.ID,
		"phone":       whatsapp.NormalizePhone(req.Phone),
		"message":     message,
		"link":        whatsapp.DeepLink(req.Phone, message),
	})
}
