package exitform

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
	forms := r.Group("/exit-forms")
	forms.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		forms.POST("",
			middleware.RBACAuthorize(rbacService, "exit_form", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		forms.GET("/mine", middleware.RBACAuthorize(rbacService, "exit_form", "read"), handler.GetMine)
		forms.GET("/active", middleware.RBACAuthorize(rbacService, "exit_workflow", "read"), handler.GetAllActive)
		forms.GET("/:id", middleware.RBACAuthorize(rbacService, "exit_form", "read"), handler.GetByID)
		forms.PUT("/:id", middleware.RBACAuthorize(rbacService, "exit_form", "create"), handler.Update)
	}
}
