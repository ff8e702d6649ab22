package recruitment

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
	recruitments := r.Group("/recruitments")
	recruitments.Use(middleware.AuthMiddleware())
	{
		recruitments.GET("", rbac.Authorize(enforcer, "recruitment", "read"), handler.GetAll)
		recruitments.GET("/:id", rbac.Authorize(enforcer, "recruitment", "read"), handler.GetByID)
		recruitments.POST("", rbac.Authorize(enforcer, "recruitment", "create"), handler.Create)
		recruitments.PUT("/:id/status", rbac.Authorize(enforcer, "recruitment", "update"), handler.UpdateStatus)

		recruitments.GET("/:id/candidates", rbac.Authorize(enforcer, "candidate", "read"), handler.ListCandidates)
		recruitments.POST("/:id/candidates", rbac.Authorize(enforcer, "candidate", "create"), handler.AddCandidate)
	}

	candidates := r.Group("/candidates")
	candidates.Use(middleware.AuthMiddleware())
	{
		candidates.PUT("/:candidateId/status", rbac.Authorize(enforcer, "candidate", "update"), handler.MoveCandidate)
	}
}
