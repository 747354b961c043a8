package assetclearance

import (
	"go-exitflow/internal/middleware"
	"go-exitflow/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	clearances := r.Group("/asset-clearance")
	clearances.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		clearances.GET("/:formId", middleware.RBACAuthorize(rbacService, "asset_clearance", "read"), handler.GetByForm)
		clearances.POST("/:formId",
			middleware.RBACAuthorize(rbacService, "asset_clearance", "submit"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
	}
}
