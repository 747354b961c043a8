package exitworkflow

import (
	"go-exitflow/internal/middleware"
	"go-exitflow/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	workflows := r.Group("/exit-workflow")
	workflows.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		workflows.GET("/:formId", middleware.RBACAuthorize(rbacService, "exit_workflow", "read"), handler.GetWorkflow)
		workflows.GET("/:formId/steps/:step", middleware.RBACAuthorize(rbacService, "exit_workflow", "read"), handler.NavigateToStep)
	}
}
