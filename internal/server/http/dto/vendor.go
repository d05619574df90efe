package dto

import (
	"time"

	"github.com/shipsheet/shipsheet/internal/domain/model"
)

// VendorResponse describes one vendor directory entry.
type VendorResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	VendorName string    `json:"vendor_name"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToVendorResponse converts a profile to its directory form. The password
// hash never leaves the server.
func ToVendorResponse(profile model.Profile) VendorResponse {
	return VendorResponse{
		ID:         profile.ID,
		Email:      profile.Email,
		VendorName: profile.VendorName,
		IsActive:   profile.IsActive,
		CreatedAt:  profile.CreatedAt,
	}
}

// CreateVendorRequest provisions a vendor account.
type CreateVendorRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	VendorName string `json:"vendor_name"`
}

// SetVendorActiveRequest toggles a vendor's access.
type SetVendorActiveRequest struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

// ImportRequest controls the shop import window.
type ImportRequest struct {
	SinceDays int `json:"since_days"`
}
