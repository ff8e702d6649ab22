package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", rbac.Authorize(enforcer, "department", "read"), handler.GetAll)
		departments.GET("/:id", rbac.Authorize(enforcer, "department", "read"), handler.GetByID)
		departments.POST("", rbac.Authorize(enforcer, "department", "create"), handler.Create)
		departments.PUT("/:id", rbac.Authorize(enforcer, "department", "update"), handler.Update)
		departments.PUT("/:id/chief", rbac.Authorize(enforcer, "department", "update"), handler.AssignChief)
		departments.DELETE("/:id", rbac.Authorize(enforcer, "department", "delete"), handler.Delete)
	}
}
