package secondment

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
	secondments := r.Group("/secondments")
	secondments.Use(middleware.AuthMiddleware())
	{
		secondments.GET("", rbac.Authorize(enforcer, "secondment", "read"), handler.GetAll)
		secondments.GET("/:id", rbac.Authorize(enforcer, "secondment", "read"), handler.GetByID)
		secondments.POST("", rbac.Authorize(enforcer, "secondment", "create"), handler.Create)
		secondments.POST("/:id/complete", rbac.Authorize(enforcer, "secondment", "update"), handler.Complete)
		secondments.POST("/:id/cancel", rbac.Authorize(enforcer, "secondment", "update"), handler.Cancel)
	}
}
