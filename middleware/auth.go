package middleware

import (
	"net/http"
	"os"
	"strings"

	"template-review-api/config"
	"template-review-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carried in the review API's bearer tokens.
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
	jwt.RegisteredClaims
}

// AuthMiddleware authenticates the request from its bearer token and stores
// the caller's identity in the gin context. Tokens issued before a user was
// removed are rejected.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		var user models.User
		if err := config.DB.Where("user_id = ? AND delete_at IS NULL", claims.UserID).First(&user).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("roleID", claims.RoleID)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header, or returns ""
// when the header is missing or not a Bearer scheme.
func bearerToken(header string) string {
	token := strings.TrimPrefix(header, "Bearer ")
	if token == header {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireRole allows the request through only when the authenticated caller
// holds one of the given roles. It must run after AuthMiddleware.
func RequireRole(roleIDs ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("roleID")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			return
		}
		userRole, _ := value.(int)
		for _, roleID := range roleIDs {
			if userRole == roleID {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
