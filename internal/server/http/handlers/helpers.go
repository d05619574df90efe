package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/server/http/middleware"
)

// CurrentProfile extracts the authenticated profile from context.
func CurrentProfile(c *gin.Context) *model.Profile {
	val, ok := c.Get(middleware.ProfileContextKey)
	if !ok {
		return nil
	}
	profile, _ := val.(*model.Profile)
	return profile
}
