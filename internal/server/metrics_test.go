package server

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/puzzlebook/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewStdLoggerAdapter(log.New(io.Discard, "", 0))
}

// scrape returns the text exposition of m.
func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", rec.Code)
	}
	return rec.Body.String()
}

func TestMetrics_Exposition(t *testing.T) {
	m := NewMetrics()
	m.IncrementActiveRequests()
	m.IncrementActiveRequests()
	m.DecrementActiveRequests()
	m.RecordRequest("GET /api/solve", http.StatusOK)
	m.RecordRequest("GET /api/solve", http.StatusOK)
	m.RecordRequest("GET /api/explain", http.StatusBadRequest)
	m.ObserveSolve("Periodic (closed form)", 3*time.Microsecond)

	body := scrape(t, m)
	for _, want := range []string{
		"puzzlebook_active_requests 1",
		`puzzlebook_requests_total{code="200",route="GET /api/solve"} 2`,
		`puzzlebook_requests_total{code="400",route="GET /api/explain"} 1`,
		`puzzlebook_solve_duration_seconds_count{solver="Periodic (closed form)"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestMetrics_RegistriesAreIndependent(t *testing.T) {
	a, b := NewMetrics(), NewMetrics()
	a.RecordRequest("GET /health", http.StatusOK)
	if strings.Contains(scrape(t, b), `route="GET /health"`) {
		t.Error("a request recorded on one Metrics leaked into another")
	}
}

func TestServer_metricsMiddleware(t *testing.T) {
	s := &Server{metrics: NewMetrics()}

	var activeDuringRequest string
	handler := s.metricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
		activeDuringRequest = scrape(t, s.metrics)
		w.WriteHeader(http.StatusTeapot)
	})
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/brew", http.NoBody))

	if !strings.Contains(activeDuringRequest, "puzzlebook_active_requests 1") {
		t.Error("the request should be counted as active while it runs")
	}
	body := scrape(t, s.metrics)
	if !strings.Contains(body, `puzzlebook_requests_total{code="418",route="unmatched"} 1`) {
		t.Errorf("unrouted request not counted:\n%s", body)
	}
	if !strings.Contains(body, "puzzlebook_active_requests 0") {
		t.Error("active requests should return to 0")
	}
}

func TestServer_handleMetrics(t *testing.T) {
	s := &Server{metrics: NewMetrics(), logger: discardLogger()}

	tests := []struct {
		method string
		want   int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodPost, http.StatusMethodNotAllowed},
		{http.MethodDelete, http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.handleMetrics(rec, httptest.NewRequest(tt.method, "/metrics", http.NoBody))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
