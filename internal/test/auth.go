package test

import (
	"context"
	"errors"
	"time"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(string) (string, error)
	ParseFn func(string) (string, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(profileID string) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(profileID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return "profile-1", nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// ProfileResolverStub implements middleware session resolution contract.
type ProfileResolverStub struct {
	Profile  *model.Profile
	ParseErr error
	LookupFn func(context.Context, string) (*model.Profile, error)
	ParseFn  func(string) (string, error)
}

// ParseToken either delegates to override or returns the stub profile's ID.
func (s ProfileResolverStub) ParseToken(token string) (string, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.ParseErr != nil {
		return "", s.ParseErr
	}
	if s.Profile != nil {
		return s.Profile.ID, nil
	}
	return "profile-1", nil
}

// ProfileByID resolves the stub profile.
func (s ProfileResolverStub) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	if s.LookupFn != nil {
		return s.LookupFn(ctx, id)
	}
	if s.Profile != nil {
		return s.Profile, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CacheStub is an in-memory ProfileCache.
type CacheStub struct {
	Data map[string][]byte
	Dels []string
	Err  error
}

// Get returns the cached payload when present.
func (c *CacheStub) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c.Err != nil {
		return nil, false, c.Err
	}
	raw, ok := c.Data[key]
	return raw, ok, nil
}

// Set stores the payload, lazily allocating the backing map.
func (c *CacheStub) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.Err != nil {
		return c.Err
	}
	if c.Data == nil {
		c.Data = make(map[string][]byte)
	}
	c.Data[key] = value
	return nil
}

// Del records the dropped key.
func (c *CacheStub) Del(ctx context.Context, key string) error {
	if c.Err != nil {
		return c.Err
	}
	delete(c.Data, key)
	c.Dels = append(c.Dels, key)
	return nil
}
