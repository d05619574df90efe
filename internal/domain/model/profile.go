package model

import "time"

// Role separates full sheet access from per-vendor access.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
)

// Profile describes an authenticated actor.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	VendorName   string
	IsActive     bool
	CreatedAt    time.Time
}
