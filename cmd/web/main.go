// Web server for the asyncjs demo pages
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-while/go-asyncjs/internal/config"
	"github.com/go-while/go-asyncjs/internal/web"
	prof "github.com/go-while/go-cpu-mem-profiler"
)

var (
	// command-line flags
	webaddr         string
	webport         int
	webssl          bool
	webcertFile     string
	webkeyFile      string
	templatesDir    string
	staticDir       string
	debug           bool
	pprofAddr       string
	updateFile      string
	shutdownTimeout time.Duration
)

var appVersion = "-unset-"

var Prof *prof.Profiler

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&webaddr, "webaddr", config.DefaultListenAddr, "Web server bind address")
	flag.IntVar(&webport, "webport", config.DefaultListenPort, "Web server port")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&templatesDir, "templates", "", "Load page templates from this directory instead of the embedded ones")
	flag.StringVar(&staticDir, "static", "", "Serve /static from this directory instead of the embedded files")
	flag.BoolVar(&debug, "debug", false, "Enable gin debug mode")
	flag.StringVar(&pprofAddr, "pprof", "", "Start the profiler web endpoint on this address (e.g. 127.0.0.1:51111)")
	flag.StringVar(&updateFile, "update-file", "", "Shut down gracefully once this file appears (checked every 60 seconds)")
	flag.DurationVar(&shutdownTimeout, "shutdown-timeout", config.DefaultShutdownTimeout, "Time to wait for in-flight requests on shutdown")
	flag.Parse()

	mainConfig := config.NewDefaultConfig()
	log.Printf("Starting go-asyncjs: Web Server (version: %s)", appVersion)

	webConfig := mainConfig.Server.WEB
	applyFlags(mainConfig)
	log.Printf("[WEB]: Using WEB configuration: %#v", webConfig)

	if err := webConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: Invalid configuration: %v", err)
	}

	if mainConfig.PprofAddr != "" {
		Prof = prof.NewProf()
		go Prof.PprofWeb(mainConfig.PprofAddr)
		log.Printf("[WEB]: Profiler listening on %s", mainConfig.PprofAddr)
	}

	if webConfig.Debug {
		if files, err := web.ListEmbeddedFiles(); err == nil {
			log.Printf("[WEB]: Embedded static files: %v", files)
		}
	}

	server, err := web.NewServer(webConfig)
	if err != nil {
		log.Fatalf("[WEB]: Failed to create web server: %v", err)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			webServerErrChan <- err
		}
	}()

	protocol := "http"
	if webConfig.SSL {
		protocol = "https"
	}
	log.Printf("[WEB]: Server started on %s://%s. Press Ctrl+C to gracefully shutdown...", protocol, webConfig.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updateFileChan := make(chan bool, 1)
	if updateFile != "" {
		go monitorUpdateFile(ctx, updateFile, 60*time.Second, updateFileChan)
	}

	// Wait for either shutdown signal, server error, or update file
	select {
	case <-sigChan:
		log.Printf("[WEB]: Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		log.Fatalf("[WEB]: Failed to start web server: %v", err)
	case <-updateFileChan:
		log.Printf("[WEB]: Update file detected, initiating graceful shutdown for update...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), webConfig.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WEB]: Error during shutdown: %v", err)
	}

	log.Printf("[WEB]: Graceful shutdown completed")
} // end main
