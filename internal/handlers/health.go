package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const healthCheckTimeout = 5 * time.Second

// Pinger is a dependency that can report its reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

type namedCheck struct {
	name   string
	pinger Pinger
}

// HealthChecker handles health check requests
type HealthChecker struct {
	checks []namedCheck
	logger *zap.Logger
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(logger *zap.Logger) *HealthChecker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthChecker{logger: logger}
}

// AddCheck registers a dependency probed in extended mode
func (h *HealthChecker) AddCheck(name string, p Pinger) *HealthChecker {
	h.checks = append(h.checks, namedCheck{name: name, pinger: p})
	return h
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	// Basic mode - just return that the server is running
	if r.URL.Query().Get("mode") != "extended" {
		respondJSON(w, http.StatusOK, response, h.logger)
		return
	}

	response.Checks = make(map[string]string, len(h.checks))
	for _, c := range h.checks {
		if err := h.probe(r.Context(), c.pinger); err != nil {
			response.Status = "unhealthy"
			response.Checks[c.name] = "unhealthy: " + sanitizeErrorMessage(err.Error())
			h.logger.Warn("health_check_failed", zap.String("check", c.name), zap.Error(err))
			continue
		}
		response.Checks[c.name] = "healthy"
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	respondJSON(w, statusCode, response, h.logger)
}

func (h *HealthChecker) probe(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	return p.Ping(ctx)
}
