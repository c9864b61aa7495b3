package settings

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
	settings := r.Group("/settings")
	settings.Use(middleware.AuthMiddleware())
	settings.Use(middleware.ContextLogger(logger))
	{
		// Preferensi kolom bersifat personal, cukup settings:read.
		settings.GET("/tables/:table_key",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "settings", "read"),
			handler.GetTablePreference,
		)

		settings.PUT("/tables/:table_key",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "settings", "read"),
			handler.UpsertTablePreference,
		)

		settings.GET("/:key",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "settings", "read"),
			handler.GetSetting,
		)

		settings.PUT("/:key",
			middleware.RateLimitByUser(0.5, 3),
			middleware.RBACAuthorize(rbacService, "settings", "manage"),
			handler.UpsertSetting,
		)
	}
}
