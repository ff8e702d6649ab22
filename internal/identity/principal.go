package identity

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Principal is the authenticated actor attached to a request by the auth
// middleware. A zero Principal means unauthenticated.
type Principal struct {
	UserID   uuid.UUID
	Role     Role
	PersonID *uuid.UUID // nil when the account is not linked to a person record
}

func (p Principal) Authenticated() bool {
	return p.UserID != uuid.Nil
}

const principalKey = "principal"

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the request principal. The zero value is returned
// for unauthenticated requests so scoping degrades to an empty visible set.
func PrincipalFrom(c *gin.Context) Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(Principal); ok {
			return p
		}
	}
	return Principal{}
}
