package controller

import (
	"strings"

	"github.com/officeportal/portal/web/service"

	"github.com/gin-gonic/gin"
)

// JobApplicationForm is the public job application form.
type JobApplicationForm struct {
	FullName        string `form:"full_name"`
	DesiredUsername string `form:"desired_username"`
	DesiredPassword string `form:"desired_password"`
	Question1       string `form:"question1"`
	Question2       string `form:"question2"`
	Question3       string `form:"question3"`
	Question4       string `form:"question4"`
	Question5       string `form:"question5"`
	Question6       string `form:"question6"`
	Question7       string `form:"question7"`
	Question8       string `form:"question8"`
}

func (f JobApplicationForm) toService() service.JobApplicationForm {
	return service.JobApplicationForm{
		FullName:        f.FullName,
		DesiredUsername: f.DesiredUsername,
		DesiredPassword: f.DesiredPassword,
		Questions: [8]string{
			f.Question1, f.Question2, f.Question3, f.Question4,
			f.Question5, f.Question6, f.Question7, f.Question8,
		},
	}
}

// PublicController serves the citizen-facing forms.
type PublicController struct {
	BaseController

	feedbackService       service.FeedbackService
	reviewService         service.ReviewService
	jobApplicationService service.JobApplicationService
}

func NewPublicController(g *gin.RouterGroup) *PublicController {
	a := &PublicController{}
	a.initRouter(g)
	return a
}

func (a *PublicController) initRouter(g *gin.RouterGroup) {
	g.GET("/feedback", a.feedbackPage)
	g.POST("/feedback", a.submitFeedback)

	g.GET("/reviews", a.reviewsPage)
	g.POST("/reviews", a.submitReview)

	g.GET("/job-application", a.jobApplicationPage)
	g.POST("/job-application", a.submitJobApplication)

	g.GET("/track-application", a.trackPage)
	g.POST("/track-application", a.track)
}

func (a *PublicController) feedbackPage(c *gin.Context) {
	html(c, "feedback.html", "pages.feedback.title", nil)
}

func (a *PublicController) submitFeedback(c *gin.Context) {
	form := service.FeedbackForm{
		FullName: c.PostForm("full_name"),
		Email:    c.PostForm("email"),
		Phone:    c.PostForm("phone"),
		Message:  c.PostForm("message"),
	}
	if _, err := a.feedbackService.SubmitFeedback(c.Request.Context(), form); err != nil {
		if !flashServiceErr(c, err) {
			serverError(c, err)
			return
		}
		html(c, "feedback.html", "pages.feedback.title", gin.H{"form": form})
		return
	}
	flash(c, "success", "flash.feedbackSent")
	redirect(c, "/feedback")
}

func (a *PublicController) reviewsPage(c *gin.Context) {
	a.renderReviews(c, nil)
}

func (a *PublicController) renderReviews(c *gin.Context, form *service.ReviewForm) {
	reviews, err := a.reviewService.GetReviews()
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "reviews.html", "pages.reviews.title", gin.H{"reviews": reviews, "form": form})
}

func (a *PublicController) submitReview(c *gin.Context) {
	form := service.ReviewForm{
		AuthorName: c.PostForm("author_name"),
		Rating:     c.PostForm("rating"),
		Title:      c.PostForm("title"),
		Content:    c.PostForm("content"),
	}
	if _, err := a.reviewService.SubmitReview(c.Request.Context(), form); err != nil {
		if !flashServiceErr(c, err) {
			serverError(c, err)
			return
		}
		a.renderReviews(c, &form)
		return
	}
	flash(c, "success", "flash.reviewSent")
	redirect(c, "/reviews")
}

func (a *PublicController) jobApplicationPage(c *gin.Context) {
	html(c, "job_application.html", "pages.jobApplication.title", nil)
}

func (a *PublicController) submitJobApplication(c *gin.Context) {
	var form JobApplicationForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "danger", "flash.invalidForm")
		html(c, "job_application.html", "pages.jobApplication.title", nil)
		return
	}
	if _, err := a.jobApplicationService.SubmitApplication(c.Request.Context(), form.toService()); err != nil {
		if !flashServiceErr(c, err) {
			serverError(c, err)
			return
		}
		form.DesiredPassword = ""
		html(c, "job_application.html", "pages.jobApplication.title", gin.H{"form": form})
		return
	}
	flash(c, "success", "flash.applicationSent")
	redirect(c, "/track-application")
}

func (a *PublicController) trackPage(c *gin.Context) {
	html(c, "track_application.html", "pages.track.title", nil)
}

func (a *PublicController) track(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	if username == "" {
		flash(c, "warning", "flash.trackUsernameRequired")
		html(c, "track_application.html", "pages.track.title", nil)
		return
	}
	app, err := a.jobApplicationService.TrackApplication(username)
	if err != nil {
		if !flashServiceErr(c, err) {
			serverError(c, err)
			return
		}
		html(c, "track_application.html", "pages.track.title", nil)
		return
	}
	html(c, "track_application.html", "pages.track.title", gin.H{"application": app})
}
