// Package web assembles the portal's HTTP server: gin engine, sessions,
// templates, static files, controllers and the scheduled jobs.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/util/common"
	"github.com/officeportal/portal/web/controller"
	"github.com/officeportal/portal/web/job"
	"github.com/officeportal/portal/web/locale"
	"github.com/officeportal/portal/web/middleware"
	"github.com/officeportal/portal/web/network"
	"github.com/officeportal/portal/web/service"
	"github.com/officeportal/portal/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed assets
var assetsFS embed.FS

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

var startTime = time.Now()

const staleFeedbackAge = 24 * time.Hour

type wrapAssetsFS struct {
	embed.FS
}

func (f *wrapAssetsFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open("assets/" + name)
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFile{File: file}, nil
}

type wrapAssetsFile struct {
	fs.File
}

func (f *wrapAssetsFile) Stat() (fs.FileInfo, error) {
	info, err := f.File.Stat()
	if err != nil {
		return nil, err
	}
	return &wrapAssetsFileInfo{FileInfo: info}, nil
}

// wrapAssetsFileInfo reports the process start as modification time so
// embedded assets get a stable Last-Modified header.
type wrapAssetsFileInfo struct {
	fs.FileInfo
}

func (f *wrapAssetsFileInfo) ModTime() time.Time {
	return startTime
}

// Server is the portal web server together with its cron scheduler.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index  *controller.IndexController
	public *controller.PublicController
	desk   *controller.DocumentController
	admin  *controller.AdminController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// getHtmlFiles lists the templates under web/html on disk. Debug mode only, so
// templates can be edited without a rebuild.
func (s *Server) getHtmlFiles() ([]string, error) {
	files := make([]string, 0)
	dir, _ := os.Getwd()
	err := fs.WalkDir(os.DirFS(dir), "web/html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// getHtmlTemplate parses every embedded html/ directory into one template set.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			newT, err := t.ParseFS(htmlFS, path+"/*.html")
			if err != nil {
				// ignore folders without matches
				return nil
			}
			t = newT
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// templateFuncs are available to every page.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"i18n": func(key string, params ...string) string {
			return locale.I18n(key, params...)
		},
		"date":        formatDate,
		"deref":       deref,
		"truncate":    common.Truncate,
		"formatBytes": common.FormatBytes,
		"add":         func(a, b int) int { return a + b },
	}
}

// formatDate renders time.Time and *time.Time values; nil renders as "".
func formatDate(v any) string {
	const layout = "02.01.2006 15:04"
	switch t := v.(type) {
	case time.Time:
		return t.Format(layout)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(layout)
	}
	return ""
}

func deref(v any) any {
	switch p := v.(type) {
	case *string:
		if p == nil {
			return ""
		}
		return *p
	case *int:
		if p == nil {
			return 0
		}
		return *p
	}
	return v
}

// NewEngine builds the gin engine with every route of the portal. The locale
// must be initialized first.
func (s *Server) NewEngine() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	if webDomain := config.GetWebDomain(); webDomain != "" {
		engine.Use(middleware.DomainValidatorMiddleware(webDomain))
	}

	store := cookie.NewStore([]byte(config.GetSecretKey()))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	engine.Use(sessions.Sessions(session.Name, store))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	funcMap := templateFuncs()
	engine.SetFuncMap(funcMap)

	if config.IsDebug() {
		files, err := s.getHtmlFiles()
		if err != nil {
			return nil, err
		}
		engine.LoadHTMLFiles(files...)
		engine.StaticFS("/assets", http.FS(os.DirFS("web/assets")))
	} else {
		tpl, err := s.getHtmlTemplate(funcMap)
		if err != nil {
			return nil, err
		}
		engine.SetHTMLTemplate(tpl)
		engine.StaticFS("/assets", http.FS(&wrapAssetsFS{FS: assetsFS}))
	}
	engine.Static(service.UploadURLPrefix, config.GetUploadFolder())

	g := engine.Group("/", controller.LoadPrincipal())
	s.index = controller.NewIndexController(g)
	s.public = controller.NewPublicController(g)
	s.desk = controller.NewDocumentDeskController(g)
	s.admin = controller.NewAdminController(g)

	engine.NoRoute(controller.LoadPrincipal(), controller.NotFound)

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@daily", job.NewCheckpointJob()); err != nil {
		logger.Warning("add checkpoint job failed:", err)
	}
	if _, err := s.cron.AddJob("@every 1h", job.NewFeedbackReminderJob(s.ctx, staleFeedbackAge)); err != nil {
		logger.Warning("add feedback reminder job failed:", err)
	}
}

// Start wires the notification channels, builds the engine and starts serving.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	if err = locale.InitLocalizer(i18nFS, config.GetLang()); err != nil {
		return err
	}
	service.InitChannels(config.GetNotifyConfig())

	s.cron = cron.New(cron.WithLocation(time.Local), cron.WithSeconds())
	s.cron.Start()

	engine, err := s.NewEngine()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	certFile, keyFile := config.GetCertFile(), config.GetKeyFile()
	if certFile != "" || keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			cfg := &tls.Config{Certificates: []tls.Certificate{cert}}
			listener = network.NewAutoHttpsListener(listener)
			listener = tls.NewListener(listener, cfg)
			logger.Info("Web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("Error loading certificates:", err)
			logger.Info("Web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop shuts down the HTTP server and the scheduler.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
		if errors.Is(err2, net.ErrClosed) {
			err2 = nil
		}
	}
	return common.Combine(err1, err2)
}

func (s *Server) GetCron() *cron.Cron { return s.cron }
