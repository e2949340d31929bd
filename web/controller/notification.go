package controller

import (
	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	BaseController
}

func NewNotificationController(g *gin.RouterGroup) *NotificationController {
	a := &NotificationController{}
	a.initRouter(g)
	return a
}

func (a *NotificationController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/notifications")

	g.GET("", a.list)
	g.POST("/read-all", a.markAllRead)
	g.POST("/:id/read", a.markRead)
}

func (a *NotificationController) list(c *gin.Context) {
	items, err := notificationService.GetNotifications(0)
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "admin_notifications.html", "pages.notifications.title", gin.H{"items": items})
}

func (a *NotificationController) markRead(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := notificationService.MarkRead(id); err != nil {
		handleLookupErr(c, err)
		return
	}
	redirect(c, "/admin/notifications")
}

func (a *NotificationController) markAllRead(c *gin.Context) {
	if err := notificationService.MarkAllRead(); err != nil {
		serverError(c, err)
		return
	}
	flash(c, "success", "flash.allRead")
	redirect(c, "/admin/notifications")
}
