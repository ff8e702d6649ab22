package payroll

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
	payrolls := r.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		payrolls.GET("", rbac.Authorize(enforcer, "payroll", "read"), handler.GetAll)
		payrolls.GET("/summary/:month", rbac.Authorize(enforcer, "payroll", "read"), handler.MonthSummary)
		payrolls.GET("/:id", rbac.Authorize(enforcer, "payroll", "read"), handler.GetByID)
		payrolls.GET("/:id/payslip", rbac.Authorize(enforcer, "payroll", "read"), handler.Payslip)
		payrolls.POST("", rbac.Authorize(enforcer, "payroll", "create"), handler.Create)
		payrolls.PUT("/:id", rbac.Authorize(enforcer, "payroll", "update"), handler.Update)
	}
}
