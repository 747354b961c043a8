package payrollcheck

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
	checks := r.Group("/payroll-checks")
	checks.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		checks.GET("/:formId", middleware.RBACAuthorize(rbacService, "payroll_check", "read"), handler.GetByForm)
		checks.POST("/:formId",
			middleware.RBACAuthorize(rbacService, "payroll_check", "submit"),
			middleware.Idempotency(rdb),
			handler.Submit,
		)
	}
}
