package repository

import (
	"context"

	"github.com/shipsheet/shipsheet/internal/domain/model"
)

// ProfileRepository describes persistence operations for actor profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile model.Profile) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	ListVendors(ctx context.Context) ([]model.Profile, error)
	SetActive(ctx context.Context, id string, active bool) error
}
