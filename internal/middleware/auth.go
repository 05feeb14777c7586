package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"geticard_backend/internal/auth"
	"geticard_backend/internal/logger"
	"geticard_backend/pkg/apperrors"
)

const userEmailKey = "userEmail"

// AuthMiddleware guards protected routes. A missing bearer token is 401;
// a token that fails signature or expiry checks is 403. On success the
// subject email becomes the verified caller identity for the wrapped
// handler.
func AuthMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Abort()
			apperrors.HandleError(c, apperrors.ErrMissingToken)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		email, err := tokens.Parse(tokenStr)
		if err != nil {
			c.Abort()
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(userEmailKey, email)
		c.Request = c.Request.WithContext(logger.WithUserEmail(c.Request.Context(), email))
		c.Next()
	}
}

// GetUserEmail extracts the verified caller identity set by AuthMiddleware.
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get(userEmailKey)
	if !exists {
		return ""
	}

	str, ok := email.(string)
	if !ok {
		return ""
	}

	return str
}
