package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/els/internal/dev"
	"github.com/vango-dev/els/pkg/render"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:3000").
	// Default: ":3000".
	Address string

	// PagesDir is the directory of HTML pages to serve.
	PagesDir string

	// Renderer expands custom elements. Required.
	Renderer *render.Renderer

	// Options are the render options for pages and the render endpoint.
	// Default: render.DefaultOptions().
	Options *render.Options

	// Logger is used for lifecycle and failure logs.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// DevMode shows error details in error pages.
	DevMode bool

	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool

	// Registry receives the els collectors when Metrics is set.
	// Default: a fresh registry private to the server.
	Registry *prometheus.Registry

	// Reloader enables the reload endpoint and client script injection.
	Reloader *dev.Reloader

	// MaxRenderBytes limits the body of render requests.
	// Default: 1MB.
	MaxRenderBytes int64

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout is the maximum time to read request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	opts := render.DefaultOptions()
	return Config{
		Address:           ":3000",
		PagesDir:          "pages",
		Options:           &opts,
		MaxRenderBytes:    1 << 20,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// withDefaults fills in zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Address == "" {
		c.Address = defaults.Address
	}
	if c.PagesDir == "" {
		c.PagesDir = defaults.PagesDir
	}
	if c.Options == nil {
		c.Options = defaults.Options
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Metrics && c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}
	if c.MaxRenderBytes <= 0 {
		c.MaxRenderBytes = defaults.MaxRenderBytes
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	return c
}
