package controller

import (
	"strconv"
	"sync"

	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/web/global"
	"github.com/officeportal/portal/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController keeps the host status for the dashboard and serves the in-memory log.
type ServerController struct {
	BaseController

	serverService service.ServerService

	mu         sync.Mutex
	lastStatus *service.Status
}

func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	a.startTask()
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g.GET("/logs", a.logs)
}

func (a *ServerController) refreshStatus() *service.Status {
	status := a.serverService.GetStatus()
	a.mu.Lock()
	a.lastStatus = status
	a.mu.Unlock()
	return status
}

// startTask keeps the cached status fresh while the server runs.
func (a *ServerController) startTask() {
	c := global.GetCron()
	if c == nil {
		return
	}
	if _, err := c.AddFunc("@every 30s", func() { a.refreshStatus() }); err != nil {
		logger.Warning("schedule status refresh failed:", err)
	}
}

// GetStatus returns the cached host status, collecting it on first use.
func (a *ServerController) GetStatus() *service.Status {
	a.mu.Lock()
	status := a.lastStatus
	a.mu.Unlock()
	if status == nil {
		status = a.refreshStatus()
	}
	return status
}

func (a *ServerController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "100"))
	if err != nil {
		count = 100
	}
	level := c.DefaultQuery("level", "info")
	html(c, "admin_logs.html", "pages.logs.title", gin.H{
		"lines":  a.serverService.GetLogs(count, level),
		"count":  count,
		"level":  level,
		"levels": []string{"debug", "info", "notice", "warning", "error"},
	})
}
