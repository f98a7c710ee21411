package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sakanly_backend/internal/auth"
	"sakanly_backend/internal/models"
)

// AuthMiddleware validates the bearer token and stores userID/role in the
// gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRoles restricts a route group to a set of roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied: no role"})
			return
		}

		role, ok := roleVal.(models.UserRole)
		if !ok {
			roleStr, isString := roleVal.(string)
			if !isString {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied: invalid role type"})
				return
			}
			role = models.UserRole(roleStr)
		}

		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied: insufficient role"})
			return
		}

		c.Next()
	}
}

// CallerFromContext assembles the auth.Caller stored by AuthMiddleware.
func CallerFromContext(c *gin.Context) (auth.Caller, bool) {
	userIDVal, exists := c.Get("userID")
	if !exists {
		return auth.Caller{}, false
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return auth.Caller{}, false
	}

	var role models.UserRole
	if roleVal, exists := c.Get("role"); exists {
		switch r := roleVal.(type) {
		case models.UserRole:
			role = r
		case string:
			role = models.UserRole(r)
		}
	}

	return auth.Caller{ID: userID, Role: role}, true
}
