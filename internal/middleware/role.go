package middleware

import (
	"net/http"

	"kbtassist/internal/domain"
	"kbtassist/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole ensures that the authenticated user has one of the given roles
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		current := domain.UserRole(role.(string))
		for _, r := range roles {
			if current == r {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
		c.Abort()
	}
}

// ManagerOnly admits agents, landlords and property managers.
func ManagerOnly() gin.HandlerFunc {
	return RequireRole(domain.ManagerRoles...)
}
