package document

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
	documents := r.Group("/documents")
	documents.Use(middleware.AuthMiddleware())
	{
		documents.GET("", rbac.Authorize(enforcer, "document", "read"), handler.GetAll)
		documents.GET("/:id", rbac.Authorize(enforcer, "document", "read"), handler.GetByID)
		documents.GET("/:id/download", rbac.Authorize(enforcer, "document", "read"), handler.Download)
		documents.POST("", rbac.Authorize(enforcer, "document", "create"), handler.Upload)
		documents.DELETE("/:id", rbac.Authorize(enforcer, "document", "delete"), handler.Delete)
	}
}
