package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/server/http/dto"
)

// VendorHandler manages the vendor directory endpoints.
type VendorHandler struct {
	facade VendorFacade
}

// NewVendorHandler constructs VendorHandler.
func NewVendorHandler(facade VendorFacade) *VendorHandler {
	return &VendorHandler{facade: facade}
}

// List handles GET /api/admin/vendors.
func (h *VendorHandler) List(c *gin.Context) {
	actor := CurrentProfile(c)

	vendors, err := h.facade.Vendors(c.Request.Context(), actor)
	if err != nil {
		if errors.Is(err, domainErrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	response := make([]dto.VendorResponse, 0, len(vendors))
	for _, v := range vendors {
		response = append(response, dto.ToVendorResponse(v))
	}
	c.JSON(http.StatusOK, response)
}

// Create handles POST /api/admin/vendors.
func (h *VendorHandler) Create(c *gin.Context) {
	actor := CurrentProfile(c)

	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	vendor, err := h.facade.CreateVendor(c.Request.Context(), actor, req.Email, req.Password, req.VendorName)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		case errors.Is(err, domainErrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		case errors.Is(err, domainErrors.ErrAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToVendorResponse(*vendor))
}

// SetActive handles PATCH /api/admin/vendors. Deactivation locks the vendor
// out on their next request.
func (h *VendorHandler) SetActive(c *gin.Context) {
	actor := CurrentProfile(c)

	var req dto.SetVendorActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id required"})
		return
	}

	if err := h.facade.SetVendorActive(c.Request.Context(), actor, req.ID, req.IsActive); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
