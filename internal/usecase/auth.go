package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/domain/repository"
	pkgAuth "github.com/shipsheet/shipsheet/internal/pkg/auth"
)

// ProfileCache is a byte cache used to keep profile lookups off the database
// on the per-request auth path.
type ProfileCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

const profileCacheTTL = 30 * time.Second

func profileCacheKey(id string) string { return "profile:" + id }

// cachedProfile is the redis representation of a profile. The password hash
// is deliberately not cached.
type cachedProfile struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Role       model.Role `json:"role"`
	VendorName string     `json:"vendor_name,omitempty"`
	IsActive   bool       `json:"is_active"`
}

// AuthUseCase handles profile lifecycle and token management.
type AuthUseCase struct {
	profiles repository.ProfileRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	cache    ProfileCache
	logger   *slog.Logger
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(profiles repository.ProfileRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, cache ProfileCache, logger *slog.Logger) *AuthUseCase {
	return &AuthUseCase{profiles: profiles, hasher: hasher, tokens: strategy, cache: cache, logger: logger}
}

// Register creates a new vendor profile with email/password and returns an
// auth token. New signups always start as active vendors; admins are
// promoted out of band.
func (u *AuthUseCase) Register(ctx context.Context, email, password string) (*model.Profile, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	profile, err := u.profiles.Create(ctx, model.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleVendor,
		IsActive:     true,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(profile.ID)
	if err != nil {
		return nil, "", err
	}

	return profile, token, nil
}

// Authenticate validates credentials and returns an auth token. Deactivated
// profiles cannot sign in.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.Profile, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	profile, err := u.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(profile.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if !profile.IsActive {
		return nil, "", domainErrors.ErrInactiveProfile
	}

	token, err := u.tokens.IssueToken(profile.ID)
	if err != nil {
		return nil, "", err
	}

	return profile, token, nil
}

// ParseToken extracts the profile ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// ProfileByID fetches a profile, serving repeated lookups from the cache.
// Cache failures degrade to database reads and are only logged.
func (u *AuthUseCase) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	key := profileCacheKey(id)

	if raw, hit, err := u.cache.Get(ctx, key); err != nil {
		u.logger.Warn("profile cache read failed", slog.String("error", err.Error()))
	} else if hit {
		var cached cachedProfile
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &model.Profile{
				ID:         cached.ID,
				Email:      cached.Email,
				Role:       cached.Role,
				VendorName: cached.VendorName,
				IsActive:   cached.IsActive,
			}, nil
		}
	}

	profile, err := u.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(cachedProfile{
		ID:         profile.ID,
		Email:      profile.Email,
		Role:       profile.Role,
		VendorName: profile.VendorName,
		IsActive:   profile.IsActive,
	})
	if err == nil {
		if err := u.cache.Set(ctx, key, raw, profileCacheTTL); err != nil {
			u.logger.Warn("profile cache write failed", slog.String("error", err.Error()))
		}
	}

	return profile, nil
}
