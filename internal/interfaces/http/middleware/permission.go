package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentra/internal/application/access"
	"rentra/internal/shared/logger"
	"rentra/internal/shared/utils"
)

type PermissionMiddleware struct {
	resolver *access.Resolver
	logger   logger.Interface
}

func NewPermissionMiddleware(resolver *access.Resolver, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{resolver: resolver, logger: logger}
}

// Require rejects the request unless the principal holds the permission
// code within the request's organization scope. Runs before the handler
// touches any state.
func (m *PermissionMiddleware) Require(code string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated principal")
			c.Abort()
			return
		}

		if err := m.resolver.Check(c.Request.Context(), userID, OrganizationID(c), code); err != nil {
			m.logger.Warnw("permission denied", "user_id", userID, "required", code)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireLevel additionally enforces a privilege level threshold (lower
// levels are more privileged). Approval endpoints use it to restrict to
// manager level and above.
func (m *PermissionMiddleware) RequireLevel(code string, maxLevel int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated principal")
			c.Abort()
			return
		}

		if err := m.resolver.CheckLevel(c.Request.Context(), userID, OrganizationID(c), code, maxLevel); err != nil {
			m.logger.Warnw("permission denied", "user_id", userID, "required", code, "max_level", maxLevel)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
