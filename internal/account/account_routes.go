package account

import (
	"go-sirh/internal/middleware"
	"go-sirh/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// Account management has no policy rows for chiefs or employees, so the
// enforcer lets only ORG_ADMIN through.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.SyncedEnforcer,
) {
	accounts := r.Group("/accounts")
	accounts.Use(middleware.AuthMiddleware())
	{
		accounts.GET("", rbac.Authorize(enforcer, "account", "read"), handler.GetAll)
		accounts.GET("/:id", rbac.Authorize(enforcer, "account", "read"), handler.GetByID)
		accounts.POST("", rbac.Authorize(enforcer, "account", "create"), handler.Create)
		accounts.PUT("/:id", rbac.Authorize(enforcer, "account", "update"), handler.Update)
		accounts.PUT("/:id/password", rbac.Authorize(enforcer, "account", "update"), handler.ResetPassword)
		accounts.DELETE("/:id", rbac.Authorize(enforcer, "account", "delete"), handler.Delete)
	}
}
