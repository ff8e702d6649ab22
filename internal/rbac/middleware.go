package rbac

import (
	"net/http"

	"go-sirh/internal/identity"
	"go-sirh/internal/shared/response"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

// Authorize gates a route on the caller's role for a resource/action pair.
// It only answers "may this role ever do this"; which rows the action may
// touch is decided later by the scope resolver.
func Authorize(enforcer *casbin.SyncedEnforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := identity.PrincipalFrom(c)
		if !p.Authenticated() {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(string(p.Role), resource, action)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, "FORBIDDEN",
				"You do not have permission to access this resource",
				resource+":"+action,
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
