package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"twooter-backend/internal/shared/response"
	"twooter-backend/pkg/jwt"
)

// CallerIDKey is the gin context key holding the authenticated caller's
// identity-provider account id.
const CallerIDKey = "callerID"

// AuthMiddleware verifies the Bearer JWT and injects the caller identity
// into the request context. Token issuance belongs to the identity provider;
// this service only verifies.
func AuthMiddleware(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Pull the token from the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// 2. Expect "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		// 3. Verify and parse
		claims, err := manager.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		if claims.UserID == "" {
			response.Unauthorized(c, "token carries no user id")
			c.Abort()
			return
		}

		c.Set(CallerIDKey, claims.UserID)
		c.Next()
	}
}

// CallerID returns the authenticated caller id set by AuthMiddleware, or ""
// for unauthenticated requests.
func CallerID(c *gin.Context) string {
	return c.GetString(CallerIDKey)
}
