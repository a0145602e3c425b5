package middleware

import (
	"net/http"

	"culturehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// RequireRole ensures that the authenticated user has one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Abort(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ContextRole) == RoleAdmin
}
