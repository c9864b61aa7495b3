package lead

import (
	"go-crm/internal/middleware"
	"go-crm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	leads := r.Group("/leads")
	leads.Use(middleware.AuthMiddleware())
	leads.Use(middleware.ContextLogger(logger))
	{
		leads.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "lead", "read"),
			handler.GetAll,
		)

		leads.GET("/export",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "lead", "export"),
			handler.Export,
		)

		leads.GET("/duplicates",
			middleware.RateLimitByUser(0.5, 2), // scan O(n²), jangan dibuka lebar
			middleware.RBACAuthorize(rbacService, "lead", "read"),
			handler.FindDuplicates,
		)

		leads.POST("/duplicates/merge",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "lead", "merge"),
			handler.Merge,
		)

		leads.GET("/scoring-rules",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "lead", "score"),
			handler.ListScoringRules,
		)

		leads.PUT("/scoring-rules/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "lead", "score"),
			handler.UpdateScoringRule,
		)

		leads.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "lead", "read"),
			handler.GetById,
		)

		// Idempotency menahan double-submit form capture lead.
		leads.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "lead", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		leads.POST("/:id/score",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "lead", "score"),
			handler.RecalculateScore,
		)

		leads.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "lead", "update"),
			handler.Update,
		)

		leads.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "lead", "delete"),
			handler.Delete,
		)
	}
}
