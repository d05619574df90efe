package handlers

import (
	"encoding/csv"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/server/http/dto"
)

// OrderHandler manages the sheet endpoints.
type OrderHandler struct {
	facade SheetFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade SheetFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders. Admins see the full sheet, vendors only
// their assigned rows.
func (h *OrderHandler) List(c *gin.Context) {
	actor := CurrentProfile(c)
	orders, err := h.facade.Orders(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/orders. Admin only.
func (h *OrderHandler) Create(c *gin.Context) {
	actor := CurrentProfile(c)

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), actor, fields)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(*order))
}

// Patch handles PATCH /api/orders. The change-set is applied as a whole; any
// validation failure rejects all of it.
func (h *OrderHandler) Patch(c *gin.Context) {
	actor := CurrentProfile(c)

	var req dto.PatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.ID == "" || len(req.Changes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and changes required"})
		return
	}

	var audit model.AuditDescriptor
	if req.Audit != nil {
		audit = model.AuditDescriptor{
			Field:    model.Field(req.Audit.Field),
			OldValue: req.Audit.OldValue,
			NewValue: req.Audit.NewValue,
		}
	}

	if err := h.facade.PatchOrder(c.Request.Context(), actor, req.ID, req.Changes, audit); err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete handles DELETE /api/orders.
func (h *OrderHandler) Delete(c *gin.Context) {
	actor := CurrentProfile(c)

	var req dto.DeleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	if err := h.facade.DeleteOrder(c.Request.Context(), actor, req.ID); err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// History handles GET /api/orders/:id/updates.
func (h *OrderHandler) History(c *gin.Context) {
	actor := CurrentProfile(c)

	entries, err := h.facade.OrderHistory(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, dto.ToAuditEntryResponse(entry))
	}
	c.JSON(http.StatusOK, response)
}

// ExportCSV handles GET /api/orders/export. Admin only: the export carries
// every vendor's rows with vendor names resolved.
func (h *OrderHandler) ExportCSV(c *gin.Context) {
	actor := CurrentProfile(c)
	if actor == nil || actor.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	ctx := c.Request.Context()
	orders, err := h.facade.Orders(ctx, actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	vendors, err := h.facade.Vendors(ctx, actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	vendorNames := make(map[string]string, len(vendors))
	for _, v := range vendors {
		vendorNames[v.ID] = v.VendorName
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{
		"order_number", "customer_name", "assigned_vendor", "shipping_address",
		"carrier", "tracking_number", "tracking_url", "status", "issue_reason",
		"ship_date", "updated_at",
	})
	for _, o := range orders {
		shipDate := ""
		if o.ShipDate != nil {
			shipDate = o.ShipDate.Format("2006-01-02")
		}
		_ = w.Write([]string{
			o.OrderNumber,
			o.CustomerName,
			vendorNames[o.AssignedVendorID],
			o.ShippingAddress,
			string(o.Carrier),
			o.TrackingNumber,
			o.TrackingURL,
			string(o.Status),
			o.IssueReason,
			shipDate,
			o.UpdatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidField),
		errors.Is(err, domainErrors.ErrShippedNeedsTracking),
		errors.Is(err, domainErrors.ErrIssueNeedsReason):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "order number already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
