package document

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
	documents := r.Group("/documents")
	documents.Use(middleware.AuthMiddleware())
	documents.Use(middleware.ContextLogger(logger))
	{
		documents.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "document", "read"),
			handler.GetAll,
		)

		documents.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "document", "read"),
			handler.GetById,
		)

		documents.GET("/:id/download",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "document", "read"),
			handler.Download,
		)

		documents.POST("",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "document", "manage"),
			handler.Upload,
		)

		documents.PUT("/:id/assignments",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "document", "manage"),
			handler.UpdateAssignments,
		)

		documents.DELETE("/:id",
			middleware.RateLimitByUser(0.05, 1),
			middleware.RBACAuthorize(rbacService, "document", "manage"),
			handler.Delete,
		)
	}
}
