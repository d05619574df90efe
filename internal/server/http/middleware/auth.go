package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
	pkgAuth "github.com/shipsheet/shipsheet/internal/pkg/auth"
)

const (
	// ProfileContextKey is a gin context key for the authenticated profile.
	ProfileContextKey = "profile"
	authCookieName    = "shipsheet_token"
)

// ProfileResolver turns a session token into the acting profile.
type ProfileResolver interface {
	ParseToken(token string) (string, error)
	ProfileByID(ctx context.Context, id string) (*model.Profile, error)
}

// AuthRequired resolves the session and stores the acting profile in the
// request context. Deactivated profiles keep their session but lose access.
func AuthRequired(resolver ProfileResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		profileID, err := resolver.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		profile, err := resolver.ProfileByID(c.Request.Context(), profileID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !profile.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "inactive"})
			return
		}

		c.Set(ProfileContextKey, profile)
		c.Next()
	}
}

// AdminRequired rejects non-admin actors. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(ProfileContextKey)
		profile, _ := val.(*model.Profile)
		if !ok || profile == nil || profile.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
