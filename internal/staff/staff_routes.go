package staff

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
	staff := r.Group("/staff")
	staff.Use(middleware.AuthMiddleware())
	{
		staff.PUT("/teaching/:personId", rbac.Authorize(enforcer, "staff", "update"), handler.UpsertTeaching)
		staff.GET("/teaching/:personId", rbac.Authorize(enforcer, "staff", "read"), handler.GetTeaching)
		staff.GET("/teaching/statistics/by-grade", rbac.Authorize(enforcer, "staff", "read"), handler.TeachingByGrade)

		staff.PUT("/admin-technical/:personId", rbac.Authorize(enforcer, "staff", "update"), handler.UpsertAdminTechnical)
		staff.GET("/admin-technical/:personId", rbac.Authorize(enforcer, "staff", "read"), handler.GetAdminTechnical)

		staff.PUT("/contract/:personId", rbac.Authorize(enforcer, "staff", "update"), handler.UpsertContract)
		staff.GET("/contract/:personId", rbac.Authorize(enforcer, "staff", "read"), handler.GetContract)
		staff.GET("/contract/reports/expiring", rbac.Authorize(enforcer, "staff", "read"), handler.ExpiringContracts)
	}
}
