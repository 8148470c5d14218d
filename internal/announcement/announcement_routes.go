package announcement

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	authn middleware.Authenticator,
	rbacService rbac.Service,
) {
	announcements := r.Group("/announcements")

	announcements.Use(middleware.AuthMiddleware(authn))

	{
		announcements.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceAnnouncement, "read"), h.GetAll)
		announcements.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceAnnouncement, "write"), h.Create)
		announcements.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceAnnouncement, "read"), h.GetByID)
		announcements.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceAnnouncement, "write"), h.Update)
		announcements.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceAnnouncement, "write"), h.Delete)
	}
}
