package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/anweshon/anweshon-api/pkg/token"
)

const (
	AuthUserIDKey = "auth_user_id"
	AuthRolesKey  = "auth_user_roles"
)

// AuthMiddleware validates the bearer token, checks that the user still
// exists, and stores the user id and role claims in the request context.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || !strings.EqualFold(bearerToken[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not extract user ID from token: " + err.Error()})
			return
		}

		var count int64
		if err := db.Table("users").Where("id = ? AND deleted_at IS NULL", userID).Count(&count).Error; err != nil || count == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			return
		}

		c.Set(AuthUserIDKey, userID)
		c.Set(AuthRolesKey, claims.Roles)
		c.Next()
	}
}

// GetUserIDFromContext extracts the authenticated user's id from the context.
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, false
	}

	uid, ok := userID.(uint)
	if !ok {
		return 0, false
	}

	return uid, true
}

// GetUserRolesFromContext extracts the role claims stored by AuthMiddleware.
func GetUserRolesFromContext(c *gin.Context) []string {
	rolesVal, exists := c.Get(AuthRolesKey)
	if !exists {
		return nil
	}
	roles, ok := rolesVal.([]string)
	if !ok {
		return nil
	}
	return roles
}

// HasRole reports whether the authenticated user carries the given role claim.
func HasRole(c *gin.Context, role string) bool {
	for _, r := range GetUserRolesFromContext(c) {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}
