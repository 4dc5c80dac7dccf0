// Package web provides the HTTP server and demo pages for go-asyncjs
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-asyncjs/internal/config"
)

// notFoundBody matches the body gin writes for unmatched routes
const notFoundBody = "404 page not found"

// WebServer represents the web server
type WebServer struct {
	Router     *gin.Engine
	Config     *config.WebConfig
	Templates  *Templates
	httpServer *http.Server
}

// TemplateData represents common template data
type TemplateData struct {
	Title      string
	AppVersion string
	Year       int
}

// AsyncJSPageData represents data for an asyncjs demo page
type AsyncJSPageData struct {
	TemplateData
	Num uint64
}

// NewServer creates a new web server instance with templates and static
// files resolved from webconfig.
func NewServer(webconfig *config.WebConfig) (*WebServer, error) {
	templates, err := LoadTemplates(webconfig.TemplatesDir)
	if err != nil {
		return nil, err
	}
	static, err := staticFS(webconfig.StaticDir)
	if err != nil {
		return nil, err
	}
	return NewServerWith(webconfig, templates, static), nil
}

// NewServerWith creates a web server around an existing template engine and
// static file system.
func NewServerWith(webconfig *config.WebConfig, templates *Templates, static fs.FS) *WebServer {
	if webconfig.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// unknown methods on known paths answer 405; "/asyncjs/1/" is not "/asyncjs/1"
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false

	// Configure Gin to trust reverse proxy headers
	// Set trusted proxies for common reverse proxy setups (nginx, etc.)
	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}); err != nil {
		log.Printf("[WEB]: Warning: failed to set trusted proxies: %v", err)
	}

	server := &WebServer{
		Router:    router,
		Config:    webconfig,
		Templates: templates,
	}
	router.Use(server.ApacheLogFormat(), gin.Recovery())

	// Configure security headers based on SSL setup
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	// Apply security middleware
	router.Use(secure.New(secureConfig))

	server.httpServer = &http.Server{
		Addr:              webconfig.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	server.setupRoutes(static)
	return server
}

// readMethods are served by every route; HEAD gets the GET headers
var readMethods = []string{http.MethodGet, http.MethodHead}

// setupRoutes configures all HTTP routes
func (s *WebServer) setupRoutes(static fs.FS) {
	s.Router.Match(readMethods, "/static/*filepath", StaticHandler(static))

	s.Router.Match(readMethods, "/robots.txt", func(c *gin.Context) {
		c.String(http.StatusOK, "User-agent: *\nDisallow:\n")
	})
	s.Router.Match(readMethods, "/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	s.Router.Match(readMethods, "/", s.homePage)
	s.Router.Match(readMethods, "/asyncjs/:num", s.asyncjsPage)

	s.Router.NoRoute(s.notFound)
}

// Start listens on the configured address and serves until Shutdown.
func (s *WebServer) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on ln with SSL support if configured. It returns
// http.ErrServerClosed after Shutdown.
func (s *WebServer) Serve(ln net.Listener) error {
	if s.Config.SSL {
		if s.Config.CertFile == "" || s.Config.KeyFile == "" {
			ln.Close()
			return errors.New("SSL enabled but cert_file or key_file not specified in config")
		}
		log.Printf("[WEB]: Starting HTTPS server on %s", ln.Addr())
		return s.httpServer.ServeTLS(ln, s.Config.CertFile, s.Config.KeyFile)
	}
	log.Printf("[WEB]: Starting HTTP server on %s", ln.Addr())
	return s.httpServer.Serve(ln)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *WebServer) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	return nil
}

// ApacheLogFormat logs requests in the Apache combined log format
func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %d %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}
