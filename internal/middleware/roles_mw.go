package middleware

import (
	"net/http"

	"stackshack/internal/policy"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware creates a middleware to check for specific user roles.
// It must run after JWTAuthMiddleware.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := Principal(c)
		if principal == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Principal not found, ensure JWT middleware runs first"})
			return
		}

		for _, allowedRole := range allowedRoles {
			if principal.Role == allowedRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	}
}

// RequireAction gates a route on the central policy table. The services run
// the same check again so a direct service call cannot bypass it.
func RequireAction(action policy.Action) gin.HandlerFunc {
	return RoleMiddleware(policy.Roles(action)...)
}
