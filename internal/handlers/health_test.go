package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthy() Pinger { return pingFunc(func(context.Context) error { return nil }) }

func failing(msg string) Pinger {
	return pingFunc(func(context.Context) error { return errors.New(msg) })
}

func TestHealthChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mode       string
		trello     Pinger
		redis      Pinger
		wantStatus int
		wantHealth string
		wantChecks map[string]string
	}{
		{
			name:       "basic mode skips checks",
			mode:       "",
			trello:     failing("unreachable"),
			redis:      healthy(),
			wantStatus: http.StatusOK,
			wantHealth: "healthy",
		},
		{
			name:       "extended all healthy",
			mode:       "extended",
			trello:     healthy(),
			redis:      healthy(),
			wantStatus: http.StatusOK,
			wantHealth: "healthy",
			wantChecks: map[string]string{"trello": "healthy", "redis": "healthy"},
		},
		{
			name:       "extended trello down",
			mode:       "extended",
			trello:     failing("trello API returned 401"),
			redis:      healthy(),
			wantStatus: http.StatusServiceUnavailable,
			wantHealth: "unhealthy",
			wantChecks: map[string]string{"trello": "unhealthy: trello API returned 401", "redis": "healthy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthChecker(nil).AddCheck("trello", tt.trello).AddCheck("redis", tt.redis)

			target := "/healthz"
			if tt.mode != "" {
				target += "?mode=" + tt.mode
			}
			w := httptest.NewRecorder()
			h.HealthCheck(w, httptest.NewRequest(http.MethodGet, target, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Status != tt.wantHealth {
				t.Errorf("Expected status %q, got %q", tt.wantHealth, resp.Status)
			}
			if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
				t.Errorf("Timestamp is not RFC3339: %v", err)
			}
			if len(resp.Checks) != len(tt.wantChecks) {
				t.Fatalf("Expected checks %v, got %v", tt.wantChecks, resp.Checks)
			}
			for k, v := range tt.wantChecks {
				if resp.Checks[k] != v {
					t.Errorf("Check %s = %q, want %q", k, resp.Checks[k], v)
				}
			}
		})
	}
}

func TestHealthChecker_ProbeDeadline(t *testing.T) {
	t.Parallel()

	var deadline bool
	h := NewHealthChecker(nil).AddCheck("trello", pingFunc(func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		return nil
	}))

	w := httptest.NewRecorder()
	h.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/healthz?mode=extended", nil))

	if !deadline {
		t.Error("Expected probe context to carry a deadline")
	}
}
