package note

import (
	"go-crm/internal/middleware"
	"go-crm/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	logger *zap.Logger,
) {
	notes := r.Group("/notes")
	notes.Use(middleware.AuthMiddleware())
	notes.Use(middleware.ContextLogger(logger))
	{
		notes.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "note", "read"),
			handler.GetByPageKey,
		)

		notes.POST("",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "note", "manage"),
			handler.Create,
		)

		notes.PUT("/:id",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "note", "manage"),
			handler.Update,
		)

		notes.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "note", "manage"),
			handler.Delete,
		)
	}
}
