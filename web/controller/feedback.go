package controller

import (
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/web/service"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	BaseController

	feedbackService service.FeedbackService
}

func NewFeedbackController(g *gin.RouterGroup) *FeedbackController {
	a := &FeedbackController{}
	a.initRouter(g)
	return a
}

func (a *FeedbackController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/feedback")

	g.GET("", a.list)
	g.GET("/:id", a.detail)
	g.POST("/:id/status", a.updateStatus)
}

func (a *FeedbackController) list(c *gin.Context) {
	items, err := a.feedbackService.GetFeedbacks()
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "admin_feedback_list.html", "pages.feedbackAdmin.title", gin.H{"items": items})
}

func (a *FeedbackController) detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := a.feedbackService.GetFeedback(id)
	if err != nil {
		handleLookupErr(c, err)
		return
	}
	html(c, "admin_feedback_detail.html", "pages.feedbackAdmin.title", gin.H{
		"item":     item,
		"statuses": model.FeedbackStatuses,
	})
}

func (a *FeedbackController) updateStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	status := model.FeedbackStatus(c.PostForm("status"))
	if err := a.feedbackService.UpdateStatus(id, status); err != nil {
		if !flashServiceErr(c, err) {
			handleLookupErr(c, err)
			return
		}
	} else {
		flash(c, "success", "flash.statusUpdated")
	}
	redirect(c, "/admin/feedback/"+c.Param("id"))
}
