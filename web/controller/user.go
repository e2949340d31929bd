package controller

import (
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/web/service"
	"github.com/officeportal/portal/web/session"

	"github.com/gin-gonic/gin"
)

// UserForm is the staff account form.
type UserForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Role     string `form:"role"`
	FullName string `form:"full_name"`
	Position string `form:"position"`
	Rank     string `form:"rank"`
}

func (f UserForm) toService() service.UserForm {
	return service.UserForm{
		Username: f.Username,
		Password: f.Password,
		Role:     model.Role(f.Role),
		FullName: f.FullName,
		Position: f.Position,
		Rank:     f.Rank,
	}
}

// UserController manages staff accounts. It is mounted behind the admin role gate.
type UserController struct {
	BaseController
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.GET("", a.list)
	g.GET("/new", a.newForm)
	g.POST("/new", a.create)
	g.GET("/:id/edit", a.editForm)
	g.POST("/:id/edit", a.update)
	g.POST("/:id/delete", a.delete)
}

func (a *UserController) list(c *gin.Context) {
	users, err := a.userService.GetUsers()
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "admin_users.html", "pages.users.title", gin.H{"users": users})
}

func (a *UserController) renderForm(c *gin.Context, user *model.AdminUser) {
	html(c, "admin_user_form.html", "pages.users.title", gin.H{
		"item":  user,
		"roles": model.Roles,
	})
}

func (a *UserController) newForm(c *gin.Context) {
	a.renderForm(c, nil)
}

func (a *UserController) create(c *gin.Context) {
	var form UserForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "danger", "flash.invalidForm")
		a.renderForm(c, nil)
		return
	}
	user, err := a.userService.CreateUser(form.toService())
	if err != nil {
		if !flashServiceErr(c, err) {
			serverError(c, err)
			return
		}
		a.renderForm(c, &model.AdminUser{
			Username: form.Username,
			Role:     model.Role(form.Role),
			FullName: form.FullName,
			Position: form.Position,
			Rank:     form.Rank,
		})
		return
	}
	flash(c, "success", "flash.userCreated", "name=="+user.Username)
	redirect(c, "/admin/users")
}

func (a *UserController) editForm(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := a.userService.GetUser(id)
	if err != nil {
		handleLookupErr(c, err)
		return
	}
	a.renderForm(c, user)
}

func (a *UserController) update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	user, err := a.userService.GetUser(id)
	if err != nil {
		handleLookupErr(c, err)
		return
	}
	var form UserForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "danger", "flash.invalidForm")
		a.renderForm(c, user)
		return
	}
	if err := a.userService.UpdateUser(id, form.toService()); err != nil {
		if !flashServiceErr(c, err) {
			serverError(c, err)
			return
		}
		a.renderForm(c, user)
		return
	}
	flash(c, "success", "flash.userUpdated")
	redirect(c, "/admin/users")
}

func (a *UserController) delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p := session.GetPrincipal(c)
	err := a.userService.DeleteUser(id)
	if err != nil {
		if flashServiceErr(c, err) {
			redirect(c, "/admin/users")
			return
		}
		handleLookupErr(c, err)
		return
	}
	logger.Infof("user #%d deleted by %s", id, p.Username)
	flash(c, "info", "flash.userDeleted")
	redirect(c, "/admin/users")
}
