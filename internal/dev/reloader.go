package dev

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/els/pkg/resource"
)

// ReloaderConfig configures a Reloader.
type ReloaderConfig struct {
	// Paths are the directories to watch.
	Paths []string

	// Pages is the pages directory, used to classify changes.
	Pages string

	// Interval is the polling interval.
	Interval time.Duration

	// Cache is reset on every change. May be nil.
	Cache *resource.Cache

	// Logger receives change notifications.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Reloader ties a Watcher to a ReloadServer: on change it drops cached
// resources and tells connected browsers to reload.
type Reloader struct {
	watcher *Watcher
	server  *ReloadServer
	cache   *resource.Cache
	logger  *slog.Logger
}

// NewReloader creates a new reloader.
func NewReloader(config ReloaderConfig) *Reloader {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Reloader{
		watcher: NewWatcher(WatcherConfig{
			Paths:    config.Paths,
			Pages:    config.Pages,
			Interval: config.Interval,
		}),
		server: NewReloadServer(),
		cache:  config.Cache,
		logger: logger,
	}
	r.watcher.OnChange(r.handleChanges)
	return r
}

// Start watches until ctx is cancelled, then disconnects all browsers.
func (r *Reloader) Start(ctx context.Context) error {
	defer r.server.Close()
	return r.watcher.Start(ctx)
}

// Handler returns the WebSocket endpoint.
func (r *Reloader) Handler() http.Handler {
	return r.server
}

// Server returns the underlying reload server.
func (r *Reloader) Server() *ReloadServer {
	return r.server
}

// Watcher returns the underlying watcher.
func (r *Reloader) Watcher() *Watcher {
	return r.watcher
}

func (r *Reloader) handleChanges(changes []Change) {
	if r.cache != nil {
		r.cache.Reset()
	}
	first := changes[0]
	r.logger.Info("resources changed",
		"files", len(changes),
		"first", first.Path,
		"type", first.Type.String(),
		"clients", r.server.ClientCount())
	r.server.NotifyReload(first.Path)
}
