package absence

import (
	"go-sirh/internal/middleware"
	"go-sirh/internal/rbac"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.SyncedEnforcer,
	cache *redis.Client,
) {
	absences := r.Group("/absences")
	absences.Use(middleware.AuthMiddleware())
	{
		absences.GET("", rbac.Authorize(enforcer, "absence", "read"), handler.GetAll)
		absences.GET("/current", rbac.Authorize(enforcer, "absence", "read"), handler.Current)
		absences.GET("/planning", rbac.Authorize(enforcer, "absence", "read"), handler.Planning)
		absences.GET("/statistics/by-type", rbac.Authorize(enforcer, "absence", "read"), handler.StatisticsByType)
		absences.GET("/:id", rbac.Authorize(enforcer, "absence", "read"), handler.GetByID)

		absences.POST("", rbac.Authorize(enforcer, "absence", "create"), handler.Create)
		absences.POST("/:id/approve", rbac.Authorize(enforcer, "absence", "approve"), handler.Approve)
		absences.POST("/:id/reject", rbac.Authorize(enforcer, "absence", "approve"), handler.Reject)
		absences.POST("/:id/cancel", rbac.Authorize(enforcer, "absence", "cancel"), handler.Cancel)

		// Bulk decisions are retry-prone; the idempotency key guards
		// against double submission from the approval screen.
		absences.POST("/bulk-decide",
			rbac.Authorize(enforcer, "absence", "approve"),
			middleware.Idempotency(cache),
			handler.BulkDecide,
		)
	}
}
