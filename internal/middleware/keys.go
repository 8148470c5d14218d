package middleware

import (
	"go-hrms/internal/domain"

	"github.com/gin-gonic/gin"
)

// gin context keys populated by AuthMiddleware and RequestID.
const (
	KeyRequestID  = "request_id"
	KeyUserID     = "user_id"
	KeyEmployeeID = "employee_id"
	KeyRole       = "role"
	KeyPrincipal  = "principal"
)

// GetPrincipal returns the caller resolved by AuthMiddleware.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(KeyPrincipal)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
