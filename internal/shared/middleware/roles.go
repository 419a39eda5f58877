package middleware

import (
	"library-backend/internal/shared"
	"library-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequireRoles lets the request through only if AuthMiddleware stored one of roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if _, ok := allowed[role]; !ok {
			response.Forbidden(c, "Access denied: insufficient role")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminMiddleware checks if user has admin role
func AdminMiddleware() gin.HandlerFunc {
	return RequireRoles(shared.RoleAdmin)
}

// StaffMiddleware admits librarians and admins.
func StaffMiddleware() gin.HandlerFunc {
	return RequireRoles(shared.RoleLibrarian, shared.RoleAdmin)
}
