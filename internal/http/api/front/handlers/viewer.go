package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sheetsmith/sheetsmith/internal/catalog"
)

// viewer is the resolved request identity. The zero value is an anonymous
// viewer on the lowest tier.
type viewer struct {
	UserID   *uint64
	UserUUID string
	IsAdmin  bool
	PlanTier catalog.Tier
}

// viewerFromContext reads the identity placed by the auth middleware. The
// claimed plan always comes from the stored user row, never from request
// input, so the visibility check runs on trusted data.
func viewerFromContext(c *gin.Context) viewer {
	v := viewer{PlanTier: catalog.TierFree}
	if raw, ok := c.Get("userID"); ok {
		if id, okCast := raw.(uint64); okCast {
			v.UserID = &id
		}
	}
	if raw, ok := c.Get("userUUID"); ok {
		if uuidStr, okCast := raw.(string); okCast {
			v.UserUUID = uuidStr
		}
	}
	if raw, ok := c.Get("isAdmin"); ok {
		if isAdmin, okCast := raw.(bool); okCast {
			v.IsAdmin = isAdmin
		}
	}
	if raw, ok := c.Get("planTier"); ok {
		if tier, okCast := raw.(string); okCast {
			v.PlanTier = catalog.ParseTier(tier)
		}
	}
	return v
}
