package task

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
	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware())
	tasks.Use(middleware.ContextLogger(logger))
	{
		tasks.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "task", "read"),
			handler.GetAll,
		)

		tasks.GET("/board",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "task", "read"),
			handler.GetBoard,
		)

		tasks.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "task", "read"),
			handler.GetById,
		)

		tasks.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "task", "create"),
			handler.Create,
		)

		tasks.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "task", "update"),
			handler.Update,
		)

		tasks.DELETE("/:id",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "task", "delete"),
			handler.Delete,
		)
	}
}
