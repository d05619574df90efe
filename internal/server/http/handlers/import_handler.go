package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/server/http/dto"
)

// ImportHandler triggers shop imports and mailing list checks.
type ImportHandler struct {
	facade ImportFacade
}

// NewImportHandler constructs ImportHandler.
func NewImportHandler(facade ImportFacade) *ImportHandler {
	return &ImportHandler{facade: facade}
}

// Import handles POST /api/admin/import. The request body is optional; an
// empty window falls back to the default.
func (h *ImportHandler) Import(c *gin.Context) {
	actor := CurrentProfile(c)

	var req dto.ImportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
	}

	summary, err := h.facade.ImportOrders(c.Request.Context(), actor, req.SinceDays)
	if err != nil {
		if errors.Is(err, domainErrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// NotifyTest handles POST /api/admin/notify-test. It sends a test message to
// the admin mailing list to verify delivery configuration.
func (h *ImportHandler) NotifyTest(c *gin.Context) {
	if err := h.facade.Notify(c.Request.Context(), "Test notification", "Notification delivery is configured correctly."); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
