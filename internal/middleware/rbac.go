package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"operationaltracker/internal/models"
)

// RequireRoles allows the request through only when the authenticated
// identity's role is in the given allow-list. Lists are flat: admin is not
// implicitly included, a route that admits admins must name them.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			}})
			c.Abort()
			return
		}

		if _, ok := allowed[identity.Role]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Insufficient permissions",
			}})
			c.Abort()
			return
		}

		c.Next()
	}
}
