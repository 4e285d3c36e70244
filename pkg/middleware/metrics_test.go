package middleware

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/vango-dev/els/internal/errors"
	"github.com/vango-dev/els/pkg/render"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestMetrics_ObservePage(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))

	m.ObservePage(render.PageResult{Components: 3}, time.Millisecond, nil)
	m.ObservePage(render.PageResult{}, time.Millisecond, fmt.Errorf("render <x-y>: %w", errors.New("E002")))
	m.ObservePage(render.PageResult{}, time.Millisecond, fmt.Errorf("plain failure"))

	if got := metricCounterValue(t, m.pagesTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("pages_total(success) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.pagesTotal.WithLabelValues("error")); got != 2 {
		t.Errorf("pages_total(error) = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.componentsRendered); got != 3 {
		t.Errorf("components_rendered_total = %v, want 3", got)
	}
	if got := metricCounterValue(t, m.renderErrors.WithLabelValues("E002")); got != 1 {
		t.Errorf("render_errors_total(E002) = %v, want 1", got)
	}
	if got := metricCounterValue(t, m.renderErrors.WithLabelValues("internal")); got != 1 {
		t.Errorf("render_errors_total(internal) = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.pageDuration); got != 3 {
		t.Errorf("page_duration_seconds count = %d, want 3", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObservePage(render.PageResult{Components: 1}, time.Second, nil)

	h := Prometheus(nil)(staticHandler("text/plain", http.StatusOK, "ok"))
	if rec := serve(h, http.MethodGet, "/"); rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestPrometheus_RecordsRequests(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))

	ok := Prometheus(m)(staticHandler("text/plain", http.StatusOK, "ok"))
	missing := Prometheus(m)(http.NotFoundHandler())

	serve(ok, http.MethodGet, "/")
	serve(ok, http.MethodGet, "/")
	serve(missing, http.MethodPost, "/nope")

	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("GET", "200")); got != 2 {
		t.Errorf("http_requests_total(GET,200) = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.requestsTotal.WithLabelValues("POST", "404")); got != 1 {
		t.Errorf("http_requests_total(POST,404) = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.requestDuration.WithLabelValues("GET")); got != 2 {
		t.Errorf("http_request_duration_seconds(GET) count = %d, want 2", got)
	}
}

func TestTransform_RecordsMetrics(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))

	good := Transform(&fakeTransformer{}, WithMetrics(m))(staticHandler("text/html", http.StatusOK, "<p></p>"))
	bad := Transform(&fakeTransformer{err: errors.New("E001")}, WithMetrics(m))(staticHandler("text/html", http.StatusOK, "<p></p>"))

	serve(good, http.MethodGet, "/")
	serve(bad, http.MethodGet, "/")

	if got := metricCounterValue(t, m.componentsRendered); got != 2 {
		t.Errorf("components_rendered_total = %v, want 2", got)
	}
	if got := metricCounterValue(t, m.renderErrors.WithLabelValues("E001")); got != 1 {
		t.Errorf("render_errors_total(E001) = %v, want 1", got)
	}
}
