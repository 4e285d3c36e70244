package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/els/internal/dev"
	elserrors "github.com/vango-dev/els/internal/errors"
	"github.com/vango-dev/els/pkg/middleware"
	"github.com/vango-dev/els/pkg/render"
)

// RenderPath is the component render endpoint.
const RenderPath = "/_els/render"

// Server serves transformed pages.
type Server struct {
	config     Config
	router     chi.Router
	metrics    *middleware.Metrics
	logger     *slog.Logger
	httpServer *http.Server
}

// New creates a server. It panics if config.Renderer is nil.
func New(config Config) *Server {
	if config.Renderer == nil {
		panic("server: Config.Renderer is required")
	}
	config = config.withDefaults()

	s := &Server{
		config: config,
		logger: config.Logger,
	}
	if config.Metrics {
		s.metrics = middleware.NewMetrics(middleware.WithRegistry(config.Registry))
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.OpenTelemetry(
		middleware.WithRequestFilter(func(req *http.Request) bool {
			return req.URL.Path != "/metrics" && req.URL.Path != dev.ReloadPath
		}),
	))
	r.Use(middleware.Prometheus(s.metrics))

	if s.config.Metrics {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}
	if s.config.Reloader != nil {
		r.Method(http.MethodGet, dev.ReloadPath, s.config.Reloader.Handler())
	}
	r.Post(RenderPath, s.handleRender)

	opts := []middleware.TransformOption{
		middleware.WithRenderOptions(*s.config.Options),
		middleware.WithLogger(s.logger),
		middleware.WithMetrics(s.metrics),
		middleware.WithDevMode(s.config.DevMode),
	}
	if s.config.Reloader != nil {
		opts = append(opts, middleware.WithRewrite(dev.InjectClientScript))
	}
	pages := newPageFiles(s.config.PagesDir, s.config.DevMode || s.config.Reloader != nil)
	r.Handle("/*", middleware.Transform(s.config.Renderer, opts...)(pages))

	return r
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router {
	return s.router
}

// handleRender renders the component markup in the request body. Query
// parameters embedCss, includeScript, patch, dropSlotted and shadowMode
// override the server's render options.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxRenderBytes))
	if err != nil {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	opts, err := renderOptions(*s.config.Options, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	markup, err := s.config.Renderer.RenderComponent(string(body), render.Overrides{}, opts)
	if err != nil {
		s.logger.Warn("component render failed", "error", err)
		http.Error(w, err.Error(), renderStatus(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(markup)))
	_, _ = io.WriteString(w, markup)
}

// renderOptions applies query parameter overrides to base.
func renderOptions(base render.Options, r *http.Request) (render.Options, error) {
	q := r.URL.Query()
	flags := []struct {
		name string
		dst  *bool
	}{
		{"embedCss", &base.EmbedCSS},
		{"includeScript", &base.IncludeScript},
		{"patch", &base.PatchAttachShadow},
		{"dropSlotted", &base.DropSlotted},
	}
	for _, f := range flags {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return base, errors.New("invalid " + f.name + ": " + strconv.Quote(v))
		}
		*f.dst = b
	}
	if mode := q.Get("shadowMode"); mode != "" {
		base.ShadowMode = render.ShadowMode(mode)
		if !base.ShadowMode.Valid() {
			return base, errors.New("invalid shadowMode: " + strconv.Quote(mode))
		}
	}
	return base, nil
}

// renderStatus maps a render failure to an HTTP status.
func renderStatus(err error) int {
	switch elserrors.CodeOf(err) {
	case "E003", "E004":
		return http.StatusBadRequest
	case "E001", "E002":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
// The reloader, when configured, runs for the same lifetime.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.config.Reloader != nil {
		go func() {
			if err := s.config.Reloader.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("reloader stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String(), "pages", s.config.PagesDir)
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.shutdown()
	}
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
