// Package config provides configuration management for go-asyncjs.
package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"time"
)

var AppVersion = "-unset-" // will be set at build time

const (
	// Default web server settings
	DefaultListenAddr      = "127.0.0.1"
	DefaultListenPort      = 5000
	DefaultShutdownTimeout = 10 * time.Second

	// Valid range for the web listen port
	MinListenPort = 1024
	MaxListenPort = 65535
)

// MainConfig holds the main configuration for go-asyncjs
type MainConfig struct {
	// Server settings
	Server ServerConfig `json:"server"`

	// Address of the profiler web endpoint, empty disables it
	PprofAddr string `json:"pprof_addr,omitempty"`

	AppVersion string `json:"app_version"` // Application version, set at build time
}

// ServerConfig holds Web server configuration
type ServerConfig struct {
	WEB *WebConfig `json:"web"`
}

// WebConfig holds web interface configuration
type WebConfig struct {
	ListenAddr      string        `json:"listen_addr"`
	ListenPort      int           `json:"listen_port"`
	SSL             bool          `json:"ssl"`
	CertFile        string        `json:"cert_file,omitempty"`
	KeyFile         string        `json:"key_file,omitempty"`
	TemplatesDir    string        `json:"templates_dir,omitempty"` // empty: use embedded templates
	StaticDir       string        `json:"static_dir,omitempty"`    // empty: use embedded static files
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	Debug           bool          `json:"debug"` // gin debug mode
}

// NewDefaultConfig returns a configuration with sensible defaults
func NewDefaultConfig() *MainConfig {
	maincfg := &MainConfig{
		AppVersion: AppVersion,
		Server: ServerConfig{
			WEB: NewDefaultWebConfig(),
		},
	}

	log.Printf("MainConfig initialized (version: %s)", maincfg.AppVersion)
	return maincfg
}

// NewDefaultWebConfig returns the web defaults: plain HTTP on the loopback
// interface, embedded templates and static files.
func NewDefaultWebConfig() *WebConfig {
	return &WebConfig{
		ListenAddr:      DefaultListenAddr,
		ListenPort:      DefaultListenPort,
		SSL:             false,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Addr returns the host:port the web server listens on
func (wc *WebConfig) Addr() string {
	return net.JoinHostPort(wc.ListenAddr, strconv.Itoa(wc.ListenPort))
}

// Validate checks the web configuration before the server is started
func (wc *WebConfig) Validate() error {
	if wc.ListenPort < MinListenPort || wc.ListenPort > MaxListenPort {
		return fmt.Errorf("invalid port number: %d (must be between %d and %d)", wc.ListenPort, MinListenPort, MaxListenPort)
	}
	if wc.SSL && (wc.CertFile == "" || wc.KeyFile == "") {
		return errors.New("SSL enabled but cert_file or key_file not specified")
	}
	if wc.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %s", wc.ShutdownTimeout)
	}
	return nil
}
