package structure

import (
	"go-sirh/internal/middleware"
	"go-sirh/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.SyncedEnforcer,
) {
	structures := r.Group("/structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.GET("", rbac.Authorize(enforcer, "structure", "read"), handler.GetAll)
		structures.GET("/tree", rbac.Authorize(enforcer, "structure", "read"), handler.GetTree)
		structures.GET("/:id", rbac.Authorize(enforcer, "structure", "read"), handler.GetByID)
		structures.GET("/:id/employees", rbac.Authorize(enforcer, "structure", "read"), handler.GetEmployees)
		structures.POST("", rbac.Authorize(enforcer, "structure", "create"), handler.Create)
		structures.PUT("/:id", rbac.Authorize(enforcer, "structure", "update"), handler.Update)
		structures.DELETE("/:id", rbac.Authorize(enforcer, "structure", "delete"), handler.Delete)
	}
}
