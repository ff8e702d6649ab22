package person

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
	persons := r.Group("/persons")
	persons.Use(middleware.AuthMiddleware())
	{
		persons.GET("", rbac.Authorize(enforcer, "person", "read"), handler.GetAll)
		persons.GET("/statistics", rbac.Authorize(enforcer, "person", "read"), handler.Statistics)
		persons.GET("/:id", rbac.Authorize(enforcer, "person", "read"), handler.GetByID)
		persons.GET("/:id/work-certificate", rbac.Authorize(enforcer, "person", "read"), handler.WorkCertificate)
		persons.POST("", rbac.Authorize(enforcer, "person", "create"), handler.Create)
		persons.PUT("/:id", rbac.Authorize(enforcer, "person", "update"), handler.Update)
		persons.DELETE("/:id", rbac.Authorize(enforcer, "person", "delete"), handler.Delete)
	}
}
