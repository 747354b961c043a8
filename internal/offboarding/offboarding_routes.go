package offboarding

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
	checklists := r.Group("/hr-offboarding")
	checklists.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		checklists.GET("/:formId", middleware.RBACAuthorize(rbacService, "offboarding", "read"), handler.GetByForm)
		checklists.POST("/:formId",
			middleware.RBACAuthorize(rbacService, "offboarding", "submit"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
	}
}
