package controller

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/web/service"
	"github.com/officeportal/portal/web/session"

	"github.com/gin-gonic/gin"
)

var (
	siteService         service.SiteService
	notificationService service.NotificationService
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// html renders a page with status 200.
func html(c *gin.Context, name string, title string, data gin.H) {
	htmlStatus(c, http.StatusOK, name, title, data)
}

// htmlStatus renders a page. Title is a translation key. The layout data (site
// info, principal, unread counter, flashes) is added here.
func htmlStatus(c *gin.Context, code int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["request_uri"] = c.Request.RequestURI

	site, err := siteService.GetSiteInfo()
	if err != nil {
		logger.Warning("get site info failed:", err)
	}
	data["site"] = site

	if p := session.GetPrincipal(c); p != nil {
		data["principal"] = p
		unread, err := notificationService.UnreadCount()
		if err != nil {
			logger.Warning("count unread notifications failed:", err)
		}
		data["unread"] = unread
	}
	data["flashes"] = session.Flashes(c)

	c.HTML(code, name, getContext(data))
}

// getContext adds version and other context data to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver":  config.GetVersion(),
		"app_name": config.GetName(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

func flash(c *gin.Context, category string, key string, params ...string) {
	session.AddFlash(c, category, I18nWeb(c, key, params...))
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func errorPage(c *gin.Context, code int, message string) {
	htmlStatus(c, code, "error.html", "pages.error.title", gin.H{
		"code":    code,
		"message": message,
	})
	c.Abort()
}

func notFound(c *gin.Context) {
	errorPage(c, http.StatusNotFound, I18nWeb(c, "pages.error.notFound"))
}

func forbidden(c *gin.Context) {
	errorPage(c, http.StatusForbidden, I18nWeb(c, "pages.error.forbidden"))
}

// serverError logs err and renders the generic failure page.
func serverError(c *gin.Context, err error) {
	logger.Errorf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	errorPage(c, http.StatusInternalServerError, I18nWeb(c, "pages.error.internal"))
}

// handleLookupErr renders 404 for missing rows and 500 for anything else.
func handleLookupErr(c *gin.Context, err error) {
	if database.IsNotFound(err) {
		notFound(c)
		return
	}
	serverError(c, err)
}

// paramID parses the :id route parameter; a malformed id renders 404.
func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		notFound(c)
		return 0, false
	}
	return id, true
}

// serviceErrorKey maps service sentinel errors to translation keys.
func serviceErrorKey(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrRequiredFields):
		return "flash.requiredFields", true
	case errors.Is(err, service.ErrUsernameTaken):
		return "flash.usernameTaken", true
	case errors.Is(err, service.ErrProtectedUser):
		return "flash.protectedUser", true
	case errors.Is(err, service.ErrNoAdminForReassign):
		return "flash.noAdminForReassign", true
	case errors.Is(err, service.ErrInvalidTransition):
		return "flash.invalidTransition", true
	case errors.Is(err, service.ErrRatingOutOfRange):
		return "flash.ratingOutOfRange", true
	case errors.Is(err, service.ErrInvalidStatus):
		return "flash.invalidStatus", true
	case errors.Is(err, service.ErrInvalidRole):
		return "flash.invalidRole", true
	case errors.Is(err, service.ErrInvalidParent):
		return "flash.invalidParent", true
	case errors.Is(err, service.ErrApplicationNotFound):
		return "flash.applicationNotFound", true
	case errors.Is(err, service.ErrUploadTooLarge):
		return "flash.uploadTooLarge", true
	case errors.Is(err, service.ErrUploadForbidden):
		return "flash.uploadForbidden", true
	}
	return "", false
}

// flashCategory picks the flash style of a known service error.
func flashCategory(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrRequiredFields):
		return "warning"
	}
	return "danger"
}

// flashServiceErr flashes a known service error and reports true; unknown errors
// are left to the caller.
func flashServiceErr(c *gin.Context, err error) bool {
	key, ok := serviceErrorKey(err)
	if !ok {
		return false
	}
	flash(c, flashCategory(err), key)
	return true
}

// NotFound renders the 404 page; it serves as the engine's NoRoute handler.
func NotFound(c *gin.Context) {
	notFound(c)
}
