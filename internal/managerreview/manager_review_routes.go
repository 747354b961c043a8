package managerreview

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
	reviews := r.Group("/manager-review")
	reviews.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		reviews.GET("/:formId", middleware.RBACAuthorize(rbacService, "manager_review", "read"), handler.GetByForm)
		reviews.POST("/:formId",
			middleware.RBACAuthorize(rbacService, "manager_review", "submit"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
	}
}
