package middleware

import (
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hsts     bool
		tls      bool
		wantHSTS bool
	}{
		{name: "plain http", hsts: true, tls: false, wantHSTS: false},
		{name: "tls with hsts", hsts: true, tls: true, wantHSTS: true},
		{name: "tls without hsts", hsts: false, tls: true, wantHSTS: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := SecurityHeaders(tt.hsts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			req := httptest.NewRequest(http.MethodGet, "/api/statistics", nil)
			if tt.tls {
				req.TLS = &tls.ConnectionState{}
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			for k, v := range apiSecurityHeaders {
				if got := w.Header().Get(k); got != v {
					t.Errorf("Header %s = %q, want %q", k, got, v)
				}
			}
			gotHSTS := w.Header().Get("Strict-Transport-Security") != ""
			if gotHSTS != tt.wantHSTS {
				t.Errorf("HSTS present = %v, want %v", gotHSTS, tt.wantHSTS)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"https://dash.example.com"}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{name: "allowed origin", origin: "https://dash.example.com", wantAllow: "https://dash.example.com"},
		{name: "foreign origin", origin: "https://evil.example.com", wantAllow: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/daily-stats", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestCORS_DefaultOrigin(t *testing.T) {
	t.Parallel()

	handler := CORS(nil, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/weekly-stats", nil)
	req.Header.Set("Origin", defaultCORSOrigin)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != defaultCORSOrigin {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, defaultCORSOrigin)
	}
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	handler := Timeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", w.Code)
	}
	if w.Body.String() != timeoutBody {
		t.Errorf("Expected body %q, got %q", timeoutBody, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}
	var body ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body.Error != "Request Timeout" {
		t.Errorf("Expected JSON error body, got %q (%v)", w.Body.String(), err)
	}
}

func TestTimeout_HandlerContentTypeKept(t *testing.T) {
	t.Parallel()

	handler := Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	if ct := w.Header().Get("Content-Type"); ct != "text/plain" {
		t.Errorf("Expected handler Content-Type to be kept, got %q", ct)
	}
}

func TestTimeout_FastHandler(t *testing.T) {
	t.Parallel()

	handler := Timeout(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/statistics", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Code)
	}
}
