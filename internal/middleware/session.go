package middleware

import (
	"go-exitflow/internal/workflow"

	"github.com/gin-gonic/gin"
)

// SessionFrom builds the explicit workflow session from the claims that
// AuthMiddleware stored on the gin context.
func SessionFrom(c *gin.Context) workflow.Session {
	return workflow.Session{
		EmployeeID: c.GetString("employee_id"),
		Username:   c.GetString("username"),
		Role:       c.GetString("role"),
	}
}
