package middleware

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/infrastructure/auth"
	"repairdesk/internal/shared/constants"
	"repairdesk/internal/shared/errors"
	"repairdesk/internal/shared/logger"
	"repairdesk/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and stores the caller's id, role and
// full name on the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, errors.ErrorTypeUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, errors.ErrorTypeUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			var authErr *errors.AuthError
			if stderrors.Is(err, auth.ErrTokenExpired) {
				authErr = errors.NewTokenExpiredError("access token")
			} else {
				authErr = errors.NewTokenInvalidError("access token")
			}
			if errors.ShouldLogAuthError(authErr) {
				m.logger.Warnw("failed to verify token",
					"error", err,
					"security_event", errors.IsSecurityEvent(authErr),
					"client_ip", c.ClientIP(),
				)
			}
			utils.ErrorResponseWithError(c, authErr)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, claims.Role.String())
		c.Set(constants.ContextKeyUserFullName, claims.FullName)

		c.Next()
	}
}
