package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/learnhub/learnhub-backend/internal/response"
	"github.com/learnhub/learnhub-backend/internal/service"
)

// ContextKeyAdminID is the Gin context key for the authenticated admin id.
const ContextKeyAdminID = "admin_id"

// RequireAdminJWT validates a bearer token from the Authorization header and
// makes the administrator's id available to handlers. Requests without a
// valid token never reach the handler.
func RequireAdminJWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearerToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, "authentication token required")
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, "invalid authentication token")
			return
		}

		c.Set(ContextKeyAdminID, claims.AdminID)
		c.Next()
	}
}

// GetAdminID retrieves the authenticated admin id from the Gin context.
// Returns the empty string if the JWT middleware did not run.
func GetAdminID(c *gin.Context) string {
	val, exists := c.Get(ContextKeyAdminID)
	if !exists {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
