package exporters

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/smazurov/filterbind/internal/metrics"
)

func TestHTTPHandler(t *testing.T) {
	handler := HTTPHandler()
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}

	// Record a metric so there's something to export
	metrics.RecordUndoCommand("http_test")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, `filterbind_undo_commands_total{kind="http_test"}`) {
		t.Error("expected filterbind metrics in response")
	}
}

func TestNewServerRoutesMetrics(t *testing.T) {
	srv := NewServer(":0")
	metrics.RecordKeyframeEdit("insert")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "filterbind_animation_keyframe_edits_total") {
		t.Error("expected keyframe metric at /metrics")
	}

	req = httptest.NewRequest(http.MethodGet, "/other", nil)
	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
