package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/domain/repository"
	pkgAuth "github.com/shipsheet/shipsheet/internal/pkg/auth"
)

// VendorUseCase manages the vendor directory. All operations are admin only.
type VendorUseCase struct {
	profiles repository.ProfileRepository
	hasher   pkgAuth.PasswordHasher
	cache    ProfileCache
}

// NewVendorUseCase constructs VendorUseCase.
func NewVendorUseCase(profiles repository.ProfileRepository, hasher pkgAuth.PasswordHasher, cache ProfileCache) *VendorUseCase {
	return &VendorUseCase{profiles: profiles, hasher: hasher, cache: cache}
}

// ListVendors returns vendor profiles, newest first, inactive ones included.
func (u *VendorUseCase) ListVendors(ctx context.Context, actor *model.Profile) ([]model.Profile, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrForbidden
	}
	return u.profiles.ListVendors(ctx)
}

// CreateVendor provisions a vendor account with credentials.
func (u *VendorUseCase) CreateVendor(ctx context.Context, actor *model.Profile, email, password, vendorName string) (*model.Profile, error) {
	if actor.Role != model.RoleAdmin {
		return nil, domainErrors.ErrForbidden
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	return u.profiles.Create(ctx, model.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleVendor,
		VendorName:   vendorName,
		IsActive:     true,
	})
}

// SetActive toggles a profile's active flag and drops its cache entry so the
// change takes effect on the next request.
func (u *VendorUseCase) SetActive(ctx context.Context, actor *model.Profile, id string, active bool) error {
	if actor.Role != model.RoleAdmin {
		return domainErrors.ErrForbidden
	}

	if err := u.profiles.SetActive(ctx, id, active); err != nil {
		return err
	}

	_ = u.cache.Del(ctx, profileCacheKey(id))
	return nil
}
