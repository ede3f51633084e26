// Package middleware contains the gin middlewares for authentication
// and permission enforcement.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rentra/internal/infrastructure/auth"
	"rentra/internal/shared/logger"
	"rentra/internal/shared/utils"
)

// Context keys set by RequireAuth.
const (
	ContextKeyUserID         = "user_id"
	ContextKeyOrganizationID = "organization_id"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, logger: logger}
}

// RequireAuth verifies the bearer token and stores the principal in the
// request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		if claims.OrganizationID != nil {
			c.Set(ContextKeyOrganizationID, *claims.OrganizationID)
		}
		c.Next()
	}
}

// UserID returns the authenticated user ID from the gin context.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// OrganizationID returns the optional organization scope of the request.
func OrganizationID(c *gin.Context) *uint {
	v, ok := c.Get(ContextKeyOrganizationID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
