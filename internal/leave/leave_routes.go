package leave

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	authn middleware.Authenticator,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	leaves := r.Group("/leave")
	leaves.Use(middleware.AuthMiddleware(authn))
	{
		apply := []gin.HandlerFunc{
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "apply"),
		}
		if rdb != nil {
			apply = append(apply, middleware.Idempotency(rdb))
		}
		leaves.POST("/apply", append(apply, handler.Apply)...)

		leaves.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "read_all"),
			handler.GetAll,
		)

		leaves.GET("/my",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "read_own"),
			handler.GetMine,
		)

		leaves.GET("/balance",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "balance"),
			handler.GetBalance,
		)

		leaves.GET("/export",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "export"),
			handler.Export,
		)

		leaves.PUT("/:id/status",
			middleware.RateLimitByUser(2, 5),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "decide"),
			handler.Decide,
		)

		leaves.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, "delete"),
			handler.Delete,
		)
	}
}
