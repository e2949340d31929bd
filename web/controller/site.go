package controller

import (
	"github.com/officeportal/portal/web/service"

	"github.com/gin-gonic/gin"
)

type SiteController struct {
	BaseController

	siteService service.SiteService
}

func NewSiteController(g *gin.RouterGroup) *SiteController {
	a := &SiteController{}
	a.initRouter(g)
	return a
}

func (a *SiteController) initRouter(g *gin.RouterGroup) {
	g.GET("/site", a.site)
	g.POST("/site", a.updateSite)
}

func (a *SiteController) site(c *gin.Context) {
	html(c, "admin_site.html", "pages.site.title", nil)
}

func (a *SiteController) updateSite(c *gin.Context) {
	form := service.SiteForm{
		LeaderFirstName: c.PostForm("leader_first_name"),
		LeaderLastName:  c.PostForm("leader_last_name"),
		LeaderRank:      c.PostForm("leader_rank"),
		LeaderPosition:  c.PostForm("leader_position"),
		LeaderPhotoURL:  c.PostForm("leader_photo_url"),
	}
	if err := a.siteService.UpdateSiteInfo(form); err != nil {
		serverError(c, err)
		return
	}
	flash(c, "success", "flash.siteUpdated")
	redirect(c, "/admin/site")
}
