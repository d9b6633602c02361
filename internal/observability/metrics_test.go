package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/v2/pages/:page_id/", "200", 30*time.Millisecond)
	m.ObserveAPI("GET", "/api/v2/pages/:page_id/", "200", 2*time.Second)
	m.ObserveCache("site_root_paths", true)
	m.ObserveCache("site_root_paths", false)
	m.ObserveCache("site_root_paths", false)
	m.IncInvalidResponse("retrieve_page")

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`pb_api_requests_total{method="GET",route="/api/v2/pages/:page_id/",status="200"} 2`,
		`pb_api_request_duration_seconds_bucket{method="GET",route="/api/v2/pages/:page_id/",status="200",le="0.05"} 1`,
		`pb_api_request_duration_seconds_bucket{method="GET",route="/api/v2/pages/:page_id/",status="200",le="+Inf"} 2`,
		`pb_cache_lookups_total{cache="site_root_paths",result="miss"} 2`,
		`pb_response_validation_failures_total{operation="retrieve_page"} 1`,
		"# TYPE pb_api_inflight_requests gauge",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.ObserveCache("x", true)
	m.InflightInc()
	m.InflightDec()
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("nil WritePrometheus: %v", err)
	}
}

func TestOtelDisabledShutdownIsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), nil, OtelConfig{Enabled: false})
	if shutdown == nil {
		t.Fatalf("shutdown should never be nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if Tracer() == nil {
		t.Fatalf("Tracer should not be nil")
	}
}

func TestParseHeaders(t *testing.T) {
	got := parseHeaders("x-api-key=abc, bad ,tenant = t1,=x")
	if len(got) != 2 || got["x-api-key"] != "abc" || got["tenant"] != "t1" {
		t.Fatalf("parseHeaders: got=%v", got)
	}
	if parseHeaders("") != nil {
		t.Fatalf("empty headers should be nil")
	}
}
