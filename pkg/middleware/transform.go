package middleware

import (
	"bytes"
	"context"
	_ "embed"
	"html/template"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/vango-dev/els/internal/errors"
	"github.com/vango-dev/els/pkg/render"
)

//go:embed error.html
var errorTemplateSource string

// ErrorTemplate renders the page returned when a transform fails.
var ErrorTemplate = template.Must(template.New("error").Parse(errorTemplateSource))

// PageTransformer expands the custom elements of an HTML document.
// *render.Renderer implements it.
type PageTransformer interface {
	TransformPage(ctx context.Context, page string, opts render.Options) (render.PageResult, error)
}

// TransformConfig configures the Transform middleware.
type TransformConfig struct {
	// Options are passed to every page transform.
	// Default: render.DefaultOptions()
	Options render.Options

	// Logger receives transform failures.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Metrics records page transforms when set.
	Metrics *Metrics

	// DevMode includes the error message in error pages.
	DevMode bool

	// Rewrite post-processes transformed markup, e.g. to inject the
	// dev reload client.
	Rewrite func(markup string) string
}

// TransformOption configures the Transform middleware.
type TransformOption func(*TransformConfig)

// WithRenderOptions sets the render options used for every page.
func WithRenderOptions(opts render.Options) TransformOption {
	return func(c *TransformConfig) {
		c.Options = opts
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) TransformOption {
	return func(c *TransformConfig) {
		c.Logger = logger
	}
}

// WithMetrics records page transforms into m.
func WithMetrics(m *Metrics) TransformOption {
	return func(c *TransformConfig) {
		c.Metrics = m
	}
}

// WithDevMode shows error details in error pages.
func WithDevMode(dev bool) TransformOption {
	return func(c *TransformConfig) {
		c.DevMode = dev
	}
}

// WithRewrite sets a post-processing step for transformed markup.
func WithRewrite(fn func(markup string) string) TransformOption {
	return func(c *TransformConfig) {
		c.Rewrite = fn
	}
}

// Transform returns the page lifecycle hook: middleware that buffers the
// response of next and, for successful HTML responses, replaces the body
// with the transformed document.
func Transform(t PageTransformer, opts ...TransformOption) func(http.Handler) http.Handler {
	config := TransformConfig{Options: render.DefaultOptions()}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			buf := newBufferedWriter(w)
			next.ServeHTTP(buf, r)

			if r.Method == http.MethodHead || !buf.transformable() {
				buf.flush(buf.body.Bytes(), false)
				return
			}

			start := time.Now()
			res, err := t.TransformPage(r.Context(), buf.body.String(), config.Options)
			config.Metrics.ObservePage(res, time.Since(start), err)
			if err != nil {
				config.Logger.Error("page transform failed",
					"path", r.URL.Path,
					"error", err)
				writeErrorPage(w, r, err, config.DevMode)
				return
			}

			markup := res.Markup
			if config.Rewrite != nil {
				markup = config.Rewrite(markup)
			}
			buf.flush([]byte(markup), true)
		})
	}
}

// bufferedWriter holds back the status and body of a response.
type bufferedWriter struct {
	w           http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func newBufferedWriter(w http.ResponseWriter) *bufferedWriter {
	return &bufferedWriter{w: w, status: http.StatusOK}
}

func (b *bufferedWriter) Header() http.Header {
	return b.w.Header()
}

func (b *bufferedWriter) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.wroteHeader = true
	b.status = status
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	b.wroteHeader = true
	return b.body.Write(p)
}

// transformable reports whether the buffered response is an uncompressed
// HTML document with status 200.
func (b *bufferedWriter) transformable() bool {
	if b.status != http.StatusOK || b.body.Len() == 0 {
		return false
	}
	h := b.w.Header()
	if h.Get("Content-Encoding") != "" {
		return false
	}
	ct := h.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(b.body.Bytes())
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "text/html"
}

// flush sends the held status with body. With resized set the
// Content-Length header is recomputed.
func (b *bufferedWriter) flush(body []byte, resized bool) {
	if resized {
		h := b.w.Header()
		h.Set("Content-Length", strconv.Itoa(len(body)))
		h.Del("ETag")
	}
	b.w.WriteHeader(b.status)
	if len(body) > 0 {
		_, _ = b.w.Write(body)
	}
}

type errorPageData struct {
	Title   string
	Code    string
	Message string
	Path    string
}

func writeErrorPage(w http.ResponseWriter, r *http.Request, err error, dev bool) {
	data := errorPageData{Title: "Internal Server Error"}
	if dev {
		data.Title = "Render error"
		data.Code = errors.CodeOf(err)
		data.Message = err.Error()
		data.Path = r.URL.Path
	}

	var buf bytes.Buffer
	h := w.Header()
	h.Del("Content-Length")
	h.Del("ETag")
	h.Del("Last-Modified")
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", "no-store")

	if tmplErr := ErrorTemplate.Execute(&buf, data); tmplErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<!doctype html><html><body><pre>" + template.HTMLEscapeString(data.Title) + "</pre></body></html>"))
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(buf.Bytes())
}
