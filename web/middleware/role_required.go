package middleware

import (
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/web/session"

	"github.com/gin-gonic/gin"
)

// RoleRequired lets the request through only when the principal placed on the
// context by the login check holds one of roles. Otherwise deny renders the answer.
func RoleRequired(deny gin.HandlerFunc, roles ...model.Role) gin.HandlerFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		p := session.GetPrincipal(c)
		if p == nil || !allowed[p.Role] {
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
