package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/benvon/board-stats/internal/config"
	"github.com/benvon/board-stats/internal/handlers"
	"github.com/benvon/board-stats/internal/logger"
	"github.com/benvon/board-stats/internal/metrics"
	"github.com/benvon/board-stats/internal/middleware"
	"github.com/benvon/board-stats/internal/services/board"
	"github.com/benvon/board-stats/internal/telemetry"
	"github.com/benvon/board-stats/internal/trello"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

const serviceName = "board-stats"

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.New(debugMode, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync(zapLogger) }()

	zapLogger.Info("starting_server",
		zap.String("version", version),
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("trello_base_url", logger.RedactURLString(cfg.TrelloBaseURL)),
		zap.Int("fetch_concurrency", cfg.FetchConcurrency),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	var tracerProvider *sdktrace.TracerProvider
	if cfg.OTELEnabled {
		tracerProvider, err = telemetry.InitTracer(context.Background(), serviceName, version, cfg.OTELEndpoint)
		if err != nil {
			zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
		} else {
			zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := telemetry.Shutdown(shutdownCtx, tracerProvider); err != nil {
					zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
				}
			}()
		}
	}

	m := metrics.New()

	trelloClient, err := trello.NewClient(cfg.TrelloAPIKey, cfg.TrelloAPIToken, cfg.TrelloBoardID,
		trello.WithBaseURL(cfg.TrelloBaseURL),
		trello.WithRateLimit(cfg.TrelloRequestsPerSecond, cfg.TrelloBurst),
		trello.WithConcurrency(cfg.FetchConcurrency),
		trello.WithLogger(zapLogger),
		trello.WithMetrics(m),
	)
	if err != nil {
		zapLogger.Fatal("failed_to_create_trello_client", zap.Error(err))
	}

	boardService := board.NewService(trelloClient,
		board.WithConcurrency(cfg.FetchConcurrency),
		board.WithWindows(cfg.DailyWindowDays, cfg.WeeklyWindowWeeks),
		board.WithLogger(zapLogger),
	)
	dailyDays, weeklyWeeks := boardService.Windows()
	zapLogger.Info("board_service_configured",
		zap.String("board_id", trelloClient.BoardID()),
		zap.Int("daily_window_days", dailyDays),
		zap.Int("weekly_window_weeks", weeklyWeeks),
	)

	// Redis is optional; without it rate limit counters are per process
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = middleware.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
		}
		zapLogger.Info("connected_to_redis")
	}
	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}
	defer func() {
		if err := rateLimiter.Close(); err != nil {
			zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
		}
	}()
	zapLogger.Info("rate_limiter_configured",
		zap.String("rate", cfg.RateLimit),
		zap.Bool("redis_store", rateLimiter.UsesRedis()),
	)

	healthChecker := handlers.NewHealthChecker(zapLogger).AddCheck("trello", trelloClient)
	if rateLimiter.UsesRedis() {
		healthChecker.AddCheck("redis", rateLimiter)
	}

	r := mux.NewRouter()

	// First registered runs outermost
	if tracerProvider != nil {
		r.Use(otelmux.Middleware(serviceName))
	}
	r.Use(middleware.RequestID(zapLogger))
	r.Use(middleware.Logging(zapLogger, m))
	r.Use(middleware.ErrorHandler(zapLogger))
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))

	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	openAPIHandler := handlers.NewOpenAPIHandler(filepath.Join("api", "openapi", "openapi.yaml"))
	openAPIHandler.RegisterRoutes(r)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(rateLimiter.Middleware())
	apiRouter.Use(middleware.Timeout(cfg.RequestTimeout))
	handlers.NewStatsHandler(boardService, trelloClient, zapLogger).RegisterRoutes(apiRouter)

	// CORS wraps the router so preflight requests never reach route matching
	handler := middleware.CORS(cfg.AllowedOrigins(), zapLogger)(r)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server_forced_to_shutdown", zap.Error(err))
		return
	}

	zapLogger.Info("server_exited")
}
