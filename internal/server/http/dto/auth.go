package dto

import "github.com/shipsheet/shipsheet/internal/domain/model"

// AuthRequest carries sign-up and sign-in credentials.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse describes the authenticated actor.
type ProfileResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	VendorName string `json:"vendor_name"`
	IsActive   bool   `json:"is_active"`
}

// ToProfileResponse converts a profile to its wire form.
func ToProfileResponse(profile model.Profile) ProfileResponse {
	return ProfileResponse{
		ID:         profile.ID,
		Email:      profile.Email,
		Role:       string(profile.Role),
		VendorName: profile.VendorName,
		IsActive:   profile.IsActive,
	}
}
