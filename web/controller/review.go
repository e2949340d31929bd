package controller

import (
	"github.com/officeportal/portal/web/service"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	BaseController

	reviewService service.ReviewService
}

func NewReviewController(g *gin.RouterGroup) *ReviewController {
	a := &ReviewController{}
	a.initRouter(g)
	return a
}

func (a *ReviewController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/reviews")

	g.GET("", a.list)
	g.GET("/:id", a.detail)
	g.POST("/:id/approve", a.approve)
	g.POST("/:id/reject", a.reject)
}

func (a *ReviewController) list(c *gin.Context) {
	items, err := a.reviewService.GetReviews()
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "admin_reviews.html", "pages.reviewsAdmin.title", gin.H{"items": items})
}

func (a *ReviewController) detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := a.reviewService.GetReview(id)
	if err != nil {
		handleLookupErr(c, err)
		return
	}
	html(c, "admin_review_detail.html", "pages.reviewsAdmin.title", gin.H{"item": item})
}

func (a *ReviewController) approve(c *gin.Context) {
	a.decide(c, a.reviewService.Approve, "flash.reviewApproved")
}

func (a *ReviewController) reject(c *gin.Context) {
	a.decide(c, a.reviewService.Reject, "flash.reviewRejected")
}

func (a *ReviewController) decide(c *gin.Context, action func(int) error, okKey string) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := action(id); err != nil {
		if !flashServiceErr(c, err) {
			handleLookupErr(c, err)
			return
		}
	} else {
		flash(c, "success", okKey)
	}
	redirect(c, "/admin/reviews/"+c.Param("id"))
}
