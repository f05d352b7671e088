package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anweshon/anweshon-api/internal/middleware"
)

// RoleMiddleware aborts with 403 unless the authenticated user carries one of
// the required role claims. Must run after middleware.AuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles := middleware.GetUserRolesFromContext(c)
		if len(userRoles) == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "User roles not found"})
			return
		}

		for _, userRole := range userRoles {
			for _, requiredRole := range requiredRoles {
				if strings.EqualFold(userRole, requiredRole) {
					c.Next()
					return
				}
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "Forbidden",
			"message":  "You don't have permission to access this resource",
			"required": requiredRoles,
		})
	}
}

// ClubAdminMiddleware is a convenience middleware for club-admin-only access.
func ClubAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("ClubAdmin")
}

// AdminMiddleware is a convenience middleware for platform-admin-only access.
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware("Admin")
}
