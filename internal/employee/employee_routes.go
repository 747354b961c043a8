package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware(), middleware.ExtractUserID())
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetRoster)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), handler.GetById)
	}
}
