package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/web/service"

	"github.com/gin-gonic/gin"
)

type NewsController struct {
	BaseController

	newsService service.NewsService
}

func NewNewsController(g *gin.RouterGroup) *NewsController {
	a := &NewsController{}
	a.initRouter(g)
	return a
}

func (a *NewsController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/news")

	g.GET("", a.list)
	g.GET("/new", a.newForm)
	g.POST("/new", a.create)
	g.GET("/:id/edit", a.editForm)
	g.POST("/:id/edit", a.update)
	g.POST("/:id/delete", a.delete)
}

func (a *NewsController) list(c *gin.Context) {
	items, err := a.newsService.GetAll()
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "admin_news_list.html", "pages.newsAdmin.title", gin.H{"items": items})
}

func (a *NewsController) renderForm(c *gin.Context, item *model.News) {
	exceptId := 0
	if item != nil {
		exceptId = item.Id
	}
	parents, err := a.newsService.GetParentChoices(exceptId)
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "admin_news_form.html", "pages.newsAdmin.title", gin.H{
		"item":    item,
		"parents": parents,
	})
}

func (a *NewsController) newForm(c *gin.Context) {
	a.renderForm(c, nil)
}

func (a *NewsController) editForm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := a.newsService.GetNews(id)
	if err != nil {
		handleLookupErr(c, err)
		return
	}
	a.renderForm(c, item)
}

// readForm parses the news form. An uploaded image wins over the image URL
// field and is stored by the service after validation.
func (a *NewsController) readForm(c *gin.Context) (service.NewsForm, error) {
	form := service.NewsForm{
		Title:       c.PostForm("title"),
		Content:     c.PostForm("content"),
		IsPublished: c.PostForm("is_published") != "",
		ImageURL:    c.PostForm("image_url"),
	}
	if raw := strings.TrimSpace(c.PostForm("parent_id")); raw != "" {
		if parentId, err := strconv.Atoi(raw); err == nil && parentId > 0 {
			form.ParentId = &parentId
		}
	}
	fh, err := c.FormFile("image_file")
	if err == nil && fh.Filename != "" {
		form.ImageFile = fh
	} else if err != nil && err != http.ErrMissingFile && err != http.ErrNotMultipart {
		return form, err
	}
	return form, nil
}

func (a *NewsController) create(c *gin.Context) {
	form, err := a.readForm(c)
	if err == nil {
		_, err = a.newsService.CreateNews(form)
	}
	if err != nil {
		if !flashServiceErr(c, err) {
			serverError(c, err)
			return
		}
		a.renderForm(c, &model.News{Title: form.Title, Content: form.Content, IsPublished: form.IsPublished, ParentId: form.ParentId})
		return
	}
	flash(c, "success", "flash.newsCreated")
	redirect(c, "/admin/news")
}

func (a *NewsController) update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := a.newsService.GetNews(id)
	if err != nil {
		handleLookupErr(c, err)
		return
	}
	form, err := a.readForm(c)
	if err == nil {
		err = a.newsService.UpdateNews(id, form)
	}
	if err != nil {
		if !flashServiceErr(c, err) {
			serverError(c, err)
			return
		}
		item.Title, item.Content, item.IsPublished, item.ParentId = form.Title, form.Content, form.IsPublished, form.ParentId
		a.renderForm(c, item)
		return
	}
	flash(c, "success", "flash.newsUpdated")
	redirect(c, "/admin/news")
}

func (a *NewsController) delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := a.newsService.DeleteNews(id); err != nil {
		handleLookupErr(c, err)
		return
	}
	flash(c, "info", "flash.newsDeleted")
	redirect(c, "/admin/news")
}
