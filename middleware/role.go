package middleware

import (
	"github.com/gin-gonic/gin"

	"interviewsched/models"
	"interviewsched/services/access"
	"interviewsched/utils"
)

const (
	RoleHeader = "X-User-Role"
	roleKey    = "role"
)

// RequireRole rejects requests whose X-User-Role header is missing (401) or
// not one of allowed (403).
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := access.ParseRole(c.GetHeader(RoleHeader))
		if err := access.GuardRole(role, allowed...); err != nil {
			utils.WriteError(c, RequestLogger(c), err)
			return
		}
		c.Set(roleKey, role)
		c.Next()
	}
}

// CurrentRole returns the role accepted by RequireRole.
func CurrentRole(c *gin.Context) models.Role {
	if v, ok := c.Get(roleKey); ok {
		if r, ok := v.(models.Role); ok {
			return r
		}
	}
	return ""
}
