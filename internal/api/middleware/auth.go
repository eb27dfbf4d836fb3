package middleware

import (
	"net/http"
	"strings"

	"prompthub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization header.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c, authService)
		if err != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": err})
			c.Abort()
			return
		}

		// Set user info in context for handlers to use
		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("isAdmin", claims.IsAdmin)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a token is
// present but lets anonymous requests through. Public endpoints use it to
// vary responses for owners (private prompts, own email).
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, errMsg := claimsFromHeader(c, authService)
		if errMsg != "" {
			// a bad token on a public endpoint is still rejected
			c.JSON(http.StatusUnauthorized, gin.H{"detail": errMsg})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("isAdmin", claims.IsAdmin)

		c.Next()
	}
}

func claimsFromHeader(c *gin.Context, authService service.AuthService) (*service.Claims, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "missing authorization header"
	}

	// Extract token (format: "Bearer <token>")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "invalid authorization header format"
	}

	claims, err := authService.ValidateToken(c.Request.Context(), parts[1])
	if err != nil {
		return nil, "invalid token"
	}
	return claims, ""
}

// RequireAdmin checks the isAdmin flag set by AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get("isAdmin")
		if !exists || isAdmin != true {
			c.JSON(http.StatusForbidden, gin.H{"detail": "admin privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
