package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-while/go-asyncjs/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitorUpdateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".update")
	shutdownChan := make(chan bool, 1)
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		monitorUpdateFile(ctx, path, 10*time.Millisecond, shutdownChan)
		close(done)
	}()

	require.NoError(t, os.WriteFile(path, nil, 0o644))

	select {
	case <-shutdownChan:
	case <-time.After(5 * time.Second):
		t.Fatal("no shutdown signal after update file appeared")
	}
	<-done

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path + ".todo")
	assert.NoError(t, err)
}

func TestMonitorUpdateFileStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".update")
	shutdownChan := make(chan bool, 1)
	done := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		monitorUpdateFile(ctx, path, 10*time.Millisecond, shutdownChan)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
	assert.Empty(t, shutdownChan)
}

func TestApplyFlags(t *testing.T) {
	webaddr, webport, webssl = "0.0.0.0", 8443, true
	webcertFile, webkeyFile = "cert.pem", "key.pem"
	templatesDir, staticDir = "tmpl", "static"
	debug, pprofAddr, shutdownTimeout = true, "127.0.0.1:51111", 3*time.Second
	t.Cleanup(func() {
		webaddr, webport, webssl = "", 0, false
		webcertFile, webkeyFile = "", ""
		templatesDir, staticDir = "", ""
		debug, pprofAddr, shutdownTimeout = false, "", 0
	})

	cfg := config.NewDefaultConfig()
	applyFlags(cfg)

	wc := cfg.Server.WEB
	assert.Equal(t, "0.0.0.0:8443", wc.Addr())
	assert.True(t, wc.SSL)
	assert.Equal(t, "cert.pem", wc.CertFile)
	assert.Equal(t, "key.pem", wc.KeyFile)
	assert.Equal(t, "tmpl", wc.TemplatesDir)
	assert.Equal(t, "static", wc.StaticDir)
	assert.True(t, wc.Debug)
	assert.Equal(t, 3*time.Second, wc.ShutdownTimeout)
	assert.Equal(t, "127.0.0.1:51111", cfg.PprofAddr)
	assert.NoError(t, wc.Validate())
}

func TestApplyFlagsKeepsDefaults(t *testing.T) {
	cfg := config.NewDefaultConfig()
	applyFlags(cfg)

	wc := cfg.Server.WEB
	assert.Equal(t, "127.0.0.1:5000", wc.Addr())
	assert.False(t, wc.SSL)
	assert.Empty(t, wc.TemplatesDir)
	assert.Equal(t, config.DefaultShutdownTimeout, wc.ShutdownTimeout)
}
