package controller

import (
	"github.com/officeportal/portal/web/service"

	"github.com/gin-gonic/gin"
)

type JobApplicationController struct {
	BaseController

	jobApplicationService service.JobApplicationService
}

// NewJobApplicationController mounts the application routes; decide guards the
// approve and reject actions.
func NewJobApplicationController(g *gin.RouterGroup, decide gin.HandlerFunc) *JobApplicationController {
	a := &JobApplicationController{}
	a.initRouter(g, decide)
	return a
}

func (a *JobApplicationController) initRouter(g *gin.RouterGroup, decide gin.HandlerFunc) {
	g = g.Group("/job-applications")

	g.GET("", a.list)
	g.GET("/:id", a.detail)
	g.POST("/:id/approve", decide, a.approve)
	g.POST("/:id/reject", decide, a.reject)
}

func (a *JobApplicationController) list(c *gin.Context) {
	items, err := a.jobApplicationService.GetApplications()
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "admin_job_applications.html", "pages.jobApplications.title", gin.H{"items": items})
}

func (a *JobApplicationController) detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := a.jobApplicationService.GetApplication(id)
	if err != nil {
		handleLookupErr(c, err)
		return
	}
	html(c, "admin_job_application_detail.html", "pages.jobApplications.title", gin.H{"item": item})
}

func (a *JobApplicationController) approve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := a.jobApplicationService.Approve(id)
	if err != nil {
		if !flashServiceErr(c, err) {
			handleLookupErr(c, err)
			return
		}
	} else {
		flash(c, "success", "flash.applicationApproved", "name=="+user.Username)
	}
	redirect(c, "/admin/job-applications/"+c.Param("id"))
}

func (a *JobApplicationController) reject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := a.jobApplicationService.Reject(id); err != nil {
		if !flashServiceErr(c, err) {
			handleLookupErr(c, err)
			return
		}
	} else {
		flash(c, "info", "flash.applicationRejected")
	}
	redirect(c, "/admin/job-applications/"+c.Param("id"))
}
