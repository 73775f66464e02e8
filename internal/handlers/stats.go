package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	logpkg "github.com/benvon/board-stats/internal/logger"
	"github.com/benvon/board-stats/internal/models"
	"github.com/benvon/board-stats/internal/validation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Client facing messages for failed board reads
const (
	msgDoneTasksFailed  = "Failed to fetch Trello data"
	msgDailyFailed      = "Failed to fetch daily statistics"
	msgWeeklyFailed     = "Failed to fetch weekly statistics"
	msgStatisticsFailed = "Failed to fetch statistics"
)

// StatsService computes board statistics
type StatsService interface {
	DoneTasks(ctx context.Context) (models.TaskSummary, error)
	DailyStats(ctx context.Context, days int) (models.Series, error)
	WeeklyStats(ctx context.Context, weeks int) (models.Series, error)
	Statistics(ctx context.Context) (models.Statistics, error)
}

// ConfigProvider reports the redacted Trello configuration
type ConfigProvider interface {
	APIConfig() models.APIConfig
}

// StatsHandler serves the dashboard statistics endpoints
type StatsHandler struct {
	service StatsService
	config  ConfigProvider
	logger  *zap.Logger
}

// NewStatsHandler creates a new stats handler. config may be nil, in which
// case /api/config is not registered.
func NewStatsHandler(service StatsService, config ConfigProvider, logger *zap.Logger) *StatsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{service: service, config: config, logger: logger}
}

// RegisterRoutes registers stats routes
func (h *StatsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/done-tasks", h.DoneTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/daily-stats", h.DailyStats).Methods(http.MethodGet)
	r.HandleFunc("/api/weekly-stats", h.WeeklyStats).Methods(http.MethodGet)
	r.HandleFunc("/api/statistics", h.Statistics).Methods(http.MethodGet)
	if h.config != nil {
		r.HandleFunc("/api/config", h.Config).Methods(http.MethodGet)
	}
}

type daysQuery struct {
	Days int `query:"days" validate:"min=1,max=365"`
}

type weeksQuery struct {
	Weeks int `query:"weeks" validate:"min=1,max=104"`
}

// parseWindow reads an optional integer query parameter. An absent parameter
// yields 0, which the service reads as its configured default.
func parseWindow(r *http.Request, name string, bounds func(int) any) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if err := validation.Struct(bounds(n)); err != nil {
		return 0, err
	}
	return n, nil
}

// DoneTasks handles GET /api/done-tasks
func (h *StatsHandler) DoneTasks(w http.ResponseWriter, r *http.Request) {
	log := logpkg.FromContext(r.Context(), h.logger)

	summary, err := h.service.DoneTasks(r.Context())
	if err != nil {
		log.Error("done_tasks_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, msgDoneTasksFailed, log)
		return
	}

	respondJSON(w, http.StatusOK, summary, log)
}

// DailyStats handles GET /api/daily-stats
func (h *StatsHandler) DailyStats(w http.ResponseWriter, r *http.Request) {
	log := logpkg.FromContext(r.Context(), h.logger)

	days, err := parseWindow(r, "days", func(n int) any { return daysQuery{Days: n} })
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error(), log)
		return
	}

	series, err := h.service.DailyStats(r.Context(), days)
	if err != nil {
		log.Error("daily_stats_failed", zap.Error(err), zap.Int("days", days))
		respondJSONError(w, http.StatusInternalServerError, msgDailyFailed, log)
		return
	}

	respondJSON(w, http.StatusOK, series, log)
}

// WeeklyStats handles GET /api/weekly-stats
func (h *StatsHandler) WeeklyStats(w http.ResponseWriter, r *http.Request) {
	log := logpkg.FromContext(r.Context(), h.logger)

	weeks, err := parseWindow(r, "weeks", func(n int) any { return weeksQuery{Weeks: n} })
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error(), log)
		return
	}

	series, err := h.service.WeeklyStats(r.Context(), weeks)
	if err != nil {
		log.Error("weekly_stats_failed", zap.Error(err), zap.Int("weeks", weeks))
		respondJSONError(w, http.StatusInternalServerError, msgWeeklyFailed, log)
		return
	}

	respondJSON(w, http.StatusOK, series, log)
}

// Statistics handles GET /api/statistics
func (h *StatsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	log := logpkg.FromContext(r.Context(), h.logger)

	result, err := h.service.Statistics(r.Context())
	if err != nil {
		log.Error("statistics_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, msgStatisticsFailed, log)
		return
	}

	respondJSON(w, http.StatusOK, result, log)
}

// Config handles GET /api/config
func (h *StatsHandler) Config(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.config.APIConfig(), logpkg.FromContext(r.Context(), h.logger))
}
