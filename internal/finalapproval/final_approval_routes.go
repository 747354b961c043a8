package finalapproval

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
	approvals := r.Group("/final-approval")
	approvals.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		approvals.GET("/:formId", middleware.RBACAuthorize(rbacService, "final_approval", "read"), handler.GetByForm)
		approvals.POST("/:formId",
			middleware.RBACAuthorize(rbacService, "final_approval", "submit"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
	}
}
