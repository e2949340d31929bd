package controller

import (
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/web/service"
	"github.com/officeportal/portal/web/session"

	"github.com/gin-gonic/gin"
)

// DocumentController serves the staff document desk at /documents and the
// approval queue under /admin/documents.
type DocumentController struct {
	BaseController

	documentService service.DocumentService
}

// NewDocumentController mounts the admin routes on g; decide guards the approve
// and reject actions.
func NewDocumentController(g *gin.RouterGroup, decide gin.HandlerFunc) *DocumentController {
	a := &DocumentController{}
	a.initRouter(g, decide)
	return a
}

// NewDocumentDeskController mounts the /documents page, which any signed-in
// user may use.
func NewDocumentDeskController(g *gin.RouterGroup) *DocumentController {
	a := &DocumentController{}
	desk := g.Group("/documents")
	desk.Use(a.checkLogin)
	desk.GET("", a.desk)
	desk.POST("", a.submit)
	return a
}

func (a *DocumentController) initRouter(g *gin.RouterGroup, decide gin.HandlerFunc) {
	g = g.Group("/documents")

	g.GET("", a.list)
	g.GET("/:id", a.detail)
	g.POST("/:id/approve", decide, a.approve)
	g.POST("/:id/reject", decide, a.reject)
}

// currentUser loads the account behind the principal for services that need
// the full record.
func (a *DocumentController) currentUser(c *gin.Context) (*model.AdminUser, bool) {
	user, err := a.userService.GetUser(session.GetPrincipal(c).Id)
	if err != nil {
		serverError(c, err)
		return nil, false
	}
	return user, true
}

func (a *DocumentController) renderDesk(c *gin.Context, form *service.DocumentForm) {
	p := session.GetPrincipal(c)
	mine, err := a.documentService.GetByAuthor(p.Id)
	if err != nil {
		serverError(c, err)
		return
	}
	approved, err := a.documentService.GetApproved()
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "documents.html", "pages.documents.title", gin.H{
		"mine":     mine,
		"approved": approved,
		"types":    service.DocumentTypes,
		"form":     form,
	})
}

func (a *DocumentController) desk(c *gin.Context) {
	a.renderDesk(c, nil)
}

func (a *DocumentController) submit(c *gin.Context) {
	author, ok := a.currentUser(c)
	if !ok {
		return
	}
	form := service.DocumentForm{
		Title:        c.PostForm("title"),
		Content:      c.PostForm("content"),
		DocumentType: c.PostForm("document_type"),
		FileURL:      c.PostForm("file_url"),
	}
	if _, err := a.documentService.SubmitDocument(c.Request.Context(), author, form); err != nil {
		if !flashServiceErr(c, err) {
			serverError(c, err)
			return
		}
		a.renderDesk(c, &form)
		return
	}
	flash(c, "success", "flash.documentSent")
	redirect(c, "/documents")
}

func (a *DocumentController) list(c *gin.Context) {
	items, err := a.documentService.GetDocuments()
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "admin_documents.html", "pages.documentsAdmin.title", gin.H{"items": items})
}

func (a *DocumentController) detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := a.documentService.GetDocument(id)
	if err != nil {
		handleLookupErr(c, err)
		return
	}
	html(c, "admin_document_detail.html", "pages.documentsAdmin.title", gin.H{"item": item})
}

func (a *DocumentController) approve(c *gin.Context) {
	a.decide(c, a.documentService.Approve, "flash.documentApproved")
}

func (a *DocumentController) reject(c *gin.Context) {
	a.decide(c, a.documentService.Reject, "flash.documentRejected")
}

func (a *DocumentController) decide(c *gin.Context, action func(int, *model.AdminUser) error, okKey string) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	actor, ok := a.currentUser(c)
	if !ok {
		return
	}
	if err := action(id, actor); err != nil {
		if !flashServiceErr(c, err) {
			handleLookupErr(c, err)
			return
		}
	} else {
		flash(c, "success", okKey)
	}
	redirect(c, "/admin/documents/"+c.Param("id"))
}
