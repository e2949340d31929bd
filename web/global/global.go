// Package global holds the running web server so that controllers can schedule
// work on its cron without importing the web package.
package global

import (
	"github.com/robfig/cron/v3"
)

var webServer WebServer

type WebServer interface {
	GetCron() *cron.Cron
}

func SetWebServer(s WebServer) {
	webServer = s
}

// GetCron returns the scheduler of the running server, or nil before the server
// has started (as in handler tests).
func GetCron() *cron.Cron {
	if webServer == nil {
		return nil
	}
	return webServer.GetCron()
}
