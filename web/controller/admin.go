package controller

import (
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/web/entity"
	"github.com/officeportal/portal/web/middleware"
	"github.com/officeportal/portal/web/service"
	"github.com/officeportal/portal/web/session"

	"github.com/gin-gonic/gin"
)

const (
	adminNotificationLimit = 10
	staffNotificationLimit = 5
	staffNewsLimit         = 5
)

// AdminController mounts the staff panel under /admin. Every route requires a
// session; user management and approvals also require the admin role.
type AdminController struct {
	BaseController

	newsService           service.NewsService
	feedbackService       service.FeedbackService
	documentService       service.DocumentService
	jobApplicationService service.JobApplicationService

	serverController         *ServerController
	siteController           *SiteController
	newsController           *NewsController
	userController           *UserController
	feedbackController       *FeedbackController
	notificationController   *NotificationController
	jobApplicationController *JobApplicationController
	reviewController         *ReviewController
	documentController       *DocumentController
}

func NewAdminController(g *gin.RouterGroup) *AdminController {
	a := &AdminController{}
	a.initRouter(g)
	return a
}

func (a *AdminController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/admin")
	g.Use(a.checkLogin)
	g.Use(middleware.AuditMiddleware())

	adminOnly := middleware.RoleRequired(forbidden, model.RoleAdmin)

	g.GET("", a.index)
	g.GET("/", a.index)

	a.serverController = NewServerController(g.Group("", adminOnly))
	a.siteController = NewSiteController(g)
	a.newsController = NewNewsController(g)
	a.userController = NewUserController(g.Group("/users", adminOnly))
	a.feedbackController = NewFeedbackController(g)
	a.notificationController = NewNotificationController(g)
	a.jobApplicationController = NewJobApplicationController(g, adminOnly)
	a.reviewController = NewReviewController(g)
	a.documentController = NewDocumentController(g, adminOnly)
}

func (a *AdminController) index(c *gin.Context) {
	p := session.GetPrincipal(c)
	if p.IsAdmin() {
		a.adminDashboard(c)
		return
	}

	news, err := a.newsService.GetPublished(staffNewsLimit)
	if err != nil {
		serverError(c, err)
		return
	}
	notes, err := notificationService.GetNotifications(staffNotificationLimit)
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "admin_dashboard.html", "pages.dashboard.title", gin.H{
		"news":          news,
		"notifications": notes,
	})
}

func (a *AdminController) adminDashboard(c *gin.Context) {
	var stats entity.DashboardStats
	var err error
	counters := []struct {
		dst   *int64
		count func() (int64, error)
	}{
		{&stats.TotalNews, func() (int64, error) { return a.newsService.Count(false) }},
		{&stats.PublishedNews, func() (int64, error) { return a.newsService.Count(true) }},
		{&stats.NewFeedback, func() (int64, error) { return a.feedbackService.CountByStatus(model.FeedbackNew) }},
		{&stats.PendingDocuments, func() (int64, error) { return a.documentService.CountByStatus(model.Pending) }},
		{&stats.PendingApplications, func() (int64, error) { return a.jobApplicationService.CountByStatus(model.Pending) }},
	}
	for _, counter := range counters {
		if *counter.dst, err = counter.count(); err != nil {
			serverError(c, err)
			return
		}
	}

	notes, err := notificationService.GetNotifications(adminNotificationLimit)
	if err != nil {
		serverError(c, err)
		return
	}
	status := a.serverController.GetStatus()
	if status == nil {
		logger.Warning("host status unavailable")
	}
	html(c, "admin_dashboard.html", "pages.dashboard.title", gin.H{
		"stats":         stats,
		"notifications": notes,
		"status":        status,
		"channels":      service.GetChannelStats(),
	})
}
