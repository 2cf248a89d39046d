package healthcheck

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestHandler(t *testing.T) {
	var loaded atomic.Bool
	srv := httptest.NewServer(Handler(func() error {
		if !loaded.Load() {
			return errors.New("tables not loaded")
		}
		return nil
	}))
	defer srv.Close()

	if err := Probe(srv.URL + "/health"); err != nil {
		t.Errorf("Liveness should pass immediately: %v", err)
	}
	if err := Probe(srv.URL + "/ready"); err == nil {
		t.Error("Readiness should fail before loading")
	}

	loaded.Store(true)
	if err := Probe(srv.URL + "/ready"); err != nil {
		t.Errorf("Readiness should pass after loading: %v", err)
	}
}

func TestHandler_NilReady(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
