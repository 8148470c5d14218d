package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-hrms/internal/domain"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const AccessTokenCookie = "access_token"

// Authenticator verifies a raw token and resolves the caller behind it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
}

func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found")
			return
		}

		principal, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			if httpErr.Status >= http.StatusInternalServerError {
				contextutil.GetLogger(c.Request.Context(), zap.L()).Error("authenticate failed", zap.Error(err))
			}
			response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message)
			return
		}

		employeeID := ""
		if principal.HasEmployee() {
			employeeID = principal.EmployeeID.String()
		}

		c.Set(KeyPrincipal, principal)
		c.Set(KeyUserID, principal.IdentityID.String())
		c.Set(KeyEmployeeID, employeeID)
		c.Set(KeyRole, string(principal.Role))

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, principal.IdentityID.String())
		ctx = contextutil.WithEmployeeID(ctx, employeeID)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, zap.L()).With(
			zap.String("user_id", principal.IdentityID.String()),
			zap.String("role", string(principal.Role)),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractToken prefers the Authorization header and falls back to the
// session cookie set at login.
func extractToken(c *gin.Context) string {
	if token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); found {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie
	}
	return ""
}
