package user

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn middleware.Authenticator,
	rbacService rbac.Service,
) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware(authn))
	{
		users.PUT("/me/password",
			middleware.RateLimitByUser(0.2, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceIdentity, "change_password"),
			handler.ChangePassword,
		)

		users.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceIdentity, "read"),
			handler.GetAll,
		)
		users.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceIdentity, "read"),
			handler.GetByID,
		)
		users.PATCH("/:id/status",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceIdentity, "update"),
			handler.UpdateStatus,
		)
		users.PATCH("/:id/role",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceIdentity, "update"),
			handler.UpdateRole,
		)
		users.PUT("/:id/password",
			middleware.RateLimitByUser(0.2, 3),
			middleware.RBACAuthorize(rbacService, rbac.ResourceIdentity, "update"),
			handler.ResetPassword,
		)
	}
}
