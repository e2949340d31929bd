// Package controller provides the HTTP handlers of the public site and the
// staff admin panel.
package controller

import (
	"net/http"
	"net/url"

	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/web/locale"
	"github.com/officeportal/portal/web/service"
	"github.com/officeportal/portal/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication checks shared by all controllers.
type BaseController struct {
	userService service.UserService
}

// loadPrincipal resolves the session user against the database on every request
// so a deleted account or a changed role takes effect immediately.
func (a *BaseController) loadPrincipal(c *gin.Context) {
	id := session.GetLoginUserId(c)
	if id == 0 {
		c.Next()
		return
	}
	user, err := a.userService.GetUser(id)
	if err != nil {
		logger.Warningf("session user %d no longer available: %v", id, err)
		if err := session.ClearSession(c); err != nil {
			logger.Warning("Unable to clear session:", err)
		}
		c.Next()
		return
	}
	session.SetPrincipal(c, user)
	c.Next()
}

// checkLogin sends anonymous visitors to the login form, remembering where they
// were going.
func (a *BaseController) checkLogin(c *gin.Context) {
	if session.GetPrincipal(c) == nil {
		session.AddFlash(c, "warning", I18nWeb(c, "flash.loginRequired"))
		c.Redirect(http.StatusFound, "/admin/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
		c.Abort()
		return
	}
	c.Next()
}

// I18nWeb retrieves a localized message for the web interface.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	return locale.I18n(name, params...)
}

// LoadPrincipal returns the middleware placing the signed-in user on the context.
// It must run before any handler that reads the principal.
func LoadPrincipal() gin.HandlerFunc {
	a := &BaseController{}
	return a.loadPrincipal
}
