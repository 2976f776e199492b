package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ubuntu-bounty/crm/internal/auth/authz"
	"github.com/ubuntu-bounty/crm/internal/common/cnst"
)

// RequirePermission creates a middleware that rejects requests whose
// authenticated user may not perform the given action. It must run
// after JWTAuthMiddleware.
func RequirePermission(action cnst.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !authz.Can(claims.UserType, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			return
		}
		c.Next()
	}
}
