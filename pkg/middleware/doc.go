// Package middleware provides the HTTP middleware that plugs els into a
// server.
//
// This package includes:
//   - Transform: the page lifecycle hook that expands custom elements in
//     buffered HTML responses
//   - Prometheus metrics for requests and page transforms
//   - OpenTelemetry request tracing
//
// # Page Transform
//
// Transform buffers every response of the wrapped handler. Successful
// text/html responses are passed through a renderer before they are sent;
// everything else is forwarded unchanged.
//
//	renderer := render.NewRenderer(render.Config{})
//	handler := middleware.Transform(renderer,
//	    middleware.WithRenderOptions(render.DefaultOptions()),
//	)(http.FileServer(http.Dir("pages")))
//
// A failing transform produces a 500 error page. The error message is only
// shown with WithDevMode(true).
//
// # Prometheus Metrics
//
//	m := middleware.NewMetrics(middleware.WithNamespace("els"))
//	handler = middleware.Transform(renderer, middleware.WithMetrics(m))(handler)
//	handler = middleware.Prometheus(m)(handler)
//
//	http.Handle("/metrics", promhttp.Handler())
//
// Metrics collected:
//   - els_http_requests_total: requests by method and status
//   - els_http_request_duration_seconds: request duration
//   - els_pages_total: page transforms by status
//   - els_page_duration_seconds: page transform duration
//   - els_components_rendered_total: rendered custom elements
//   - els_render_errors_total: failed transforms by error code
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span for every request and stores it in the
// request context, so the renderer's page and component spans become its
// children.
package middleware
