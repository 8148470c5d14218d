package auth

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn middleware.Authenticator,
	rbacService rbac.Service,
	loginLimit rate.Limit,
	loginBurst int,
) {
	r.POST("/login", middleware.RateLimitByIP(loginLimit, loginBurst), handler.Login)

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(loginLimit, loginBurst), handler.Login)
		auth.POST("/refresh", middleware.RateLimitByIP(loginLimit, loginBurst), handler.RefreshToken)
		auth.GET("/me", middleware.AuthMiddleware(authn), middleware.RateLimitByUser(2, 5), handler.Me)
		auth.POST("/logout", middleware.AuthMiddleware(authn), handler.Logout)
		auth.POST("/register",
			middleware.AuthMiddleware(authn),
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceIdentity, "register"),
			handler.Register,
		)
	}
}
