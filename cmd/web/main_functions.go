package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-while/go-asyncjs/internal/config"
)

// applyFlags copies command-line flag values over the defaults in cfg
func applyFlags(cfg *config.MainConfig) {
	webConfig := cfg.Server.WEB

	if webaddr != "" {
		webConfig.ListenAddr = webaddr
	}
	if webport > 0 {
		webConfig.ListenPort = webport
		log.Printf("[WEB]: Listen port: %d", webConfig.ListenPort)
	} else {
		log.Printf("[WEB]: No port flag provided, using default: %d", webConfig.ListenPort)
	}
	if webssl {
		webConfig.SSL = true
		log.Printf("[WEB]: SSL enabled via command-line flag")
	}
	if webcertFile != "" {
		webConfig.CertFile = webcertFile
		log.Printf("[WEB]: SSL cert file set: %s", webConfig.CertFile)
	}
	if webkeyFile != "" {
		webConfig.KeyFile = webkeyFile
		log.Printf("[WEB]: SSL key file set: %s", webConfig.KeyFile)
	}
	if templatesDir != "" {
		webConfig.TemplatesDir = templatesDir
		log.Printf("[WEB]: Loading templates from: %s", webConfig.TemplatesDir)
	}
	if staticDir != "" {
		webConfig.StaticDir = staticDir
		log.Printf("[WEB]: Serving static files from: %s", webConfig.StaticDir)
	}
	if shutdownTimeout > 0 {
		webConfig.ShutdownTimeout = shutdownTimeout
	}
	webConfig.Debug = debug
	cfg.PprofAddr = pprofAddr
}

// monitorUpdateFile checks for the existence of updateFilePath every interval
// and signals for shutdown when found, then renames the file to *.todo
func monitorUpdateFile(ctx context.Context, updateFilePath string, interval time.Duration, shutdownChan chan<- bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[WEB]: Update file monitor started, checking for '%s' every %s", updateFilePath, interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if _, err := os.Stat(updateFilePath); err != nil {
			continue
		}
		log.Printf("[WEB]: Update file '%s' detected, triggering graceful shutdown", updateFilePath)

		if err := os.Rename(updateFilePath, updateFilePath+".todo"); err != nil {
			log.Printf("[WEB]: Warning: Failed to rename update file '%s': %v", updateFilePath, err)
			continue
		}

		select {
		case shutdownChan <- true:
			log.Printf("[WEB]: Shutdown signal sent via update file monitor")
		default:
			log.Printf("[WEB]: Shutdown channel already signaled")
		}
		return
	}
}
