package middleware

import (
	"net/http"
	"strings"

	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/web/session"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware logs every state-changing request made by a signed-in user.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodPost {
			return
		}
		p := session.GetPrincipal(c)
		if p == nil {
			return
		}
		action, resource := extractActionFromPath(c.Request.URL.Path)
		logger.Infof("audit: user=%s role=%s action=%s resource=%s path=%s status=%d ip=%s",
			p.Username, p.Role, action, resource, c.Request.URL.Path, c.Writer.Status(), c.ClientIP())
	}
}

// extractActionFromPath maps /admin/<resource>/<id>/<verb> onto an action name.
func extractActionFromPath(path string) (action, resource string) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 0 && parts[0] == "admin" {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return "UPDATE", "dashboard"
	}
	resource = parts[0]

	switch last := parts[len(parts)-1]; last {
	case "new":
		action = "CREATE"
	case "delete":
		action = "DELETE"
	case "approve", "reject":
		action = strings.ToUpper(last)
	case "read", "read-all", "status", "edit":
		action = "UPDATE"
	default:
		if len(parts) == 1 {
			action = "CREATE"
		} else {
			action = "UPDATE"
		}
	}
	return action, resource
}
