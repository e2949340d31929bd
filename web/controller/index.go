package controller

import (
	"net/http"
	"strings"
	"text/template"

	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/web/middleware"
	"github.com/officeportal/portal/web/service"
	"github.com/officeportal/portal/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

// IndexController handles the home page, news pages and the login flow.
type IndexController struct {
	BaseController

	newsService service.NewsService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/news/:id", a.newsDetail)

	limiter := middleware.RateLimitMiddleware(
		middleware.DefaultRateLimitConfig(config.GetLoginRate()),
		a.tooManyAttempts,
	)
	g.GET("/admin/login", a.loginPage)
	g.POST("/admin/login", limiter, a.login)
	g.GET("/admin/logout", a.logout)
	g.POST("/admin/logout", a.logout)
}

func (a *IndexController) index(c *gin.Context) {
	news, err := a.newsService.GetPublished(0)
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "index.html", "pages.index.title", gin.H{"news": news})
}

// newsDetail hides unpublished items from anonymous visitors.
func (a *IndexController) newsDetail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := a.newsService.GetNews(id)
	if err != nil {
		handleLookupErr(c, err)
		return
	}
	if !item.IsPublished && session.GetPrincipal(c) == nil {
		notFound(c)
		return
	}
	recent, err := a.newsService.GetRecentOthers(id)
	if err != nil {
		serverError(c, err)
		return
	}
	children, err := a.newsService.GetChildren(id)
	if err != nil {
		serverError(c, err)
		return
	}
	html(c, "news_detail.html", "pages.news.title", gin.H{
		"item":     item,
		"recent":   recent,
		"children": children,
	})
}

func (a *IndexController) loginPage(c *gin.Context) {
	if session.GetPrincipal(c) != nil {
		redirect(c, session.SafeNext(c.Query("next"), "/admin"))
		return
	}
	html(c, "login.html", "pages.login.title", gin.H{"next": c.Query("next")})
}

func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		flash(c, "danger", "flash.invalidForm")
		html(c, "login.html", "pages.login.title", nil)
		return
	}
	if form.Next == "" {
		form.Next = c.Query("next")
	}
	form.Username = strings.TrimSpace(form.Username)

	user := a.userService.CheckUser(form.Username, form.Password)
	safeUser := template.HTMLEscapeString(form.Username)
	if user == nil {
		logger.Warningf("wrong username or password: \"%s\", IP: \"%s\"", safeUser, getRemoteIp(c))
		flash(c, "danger", "flash.wrongCredentials")
		html(c, "login.html", "pages.login.title", gin.H{"next": form.Next, "username": form.Username})
		return
	}

	if err := session.SetMaxAge(c, config.GetSessionMaxAge()*60); err != nil {
		logger.Warning("Unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("Unable to save session:", err)
		serverError(c, err)
		return
	}
	logger.Infof("%s logged in successfully, Ip Address: %s", safeUser, getRemoteIp(c))

	flash(c, "success", "flash.loginSuccess", "name=="+user.DisplayName())
	redirect(c, session.SafeNext(form.Next, "/admin"))
}

func (a *IndexController) tooManyAttempts(c *gin.Context) {
	flash(c, "danger", "flash.tooManyAttempts")
	htmlStatus(c, http.StatusTooManyRequests, "login.html", "pages.login.title", gin.H{"next": c.Query("next")})
}

func (a *IndexController) logout(c *gin.Context) {
	if p := session.GetPrincipal(c); p != nil {
		logger.Infof("%s logged out successfully", p.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	flash(c, "info", "flash.logout")
	redirect(c, "/")
}
