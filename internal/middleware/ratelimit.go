package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/benvon/board-stats/internal/request"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

const (
	// DefaultRate is used when no rate is configured
	DefaultRate = "60-M"

	storePrefix = "board_stats_limiter"
)

// RateLimiter limits requests per client IP. Counters live in Redis when a
// client is supplied, otherwise in process memory.
type RateLimiter struct {
	redisClient *redis.Client
	store       limiter.Store
	rate        limiter.Rate
}

// NewRedisClient connects to redisURL and verifies the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// NewRateLimiter builds a limiter for a formatted rate such as "60-M".
// redisClient may be nil.
func NewRateLimiter(formattedRate string, redisClient *redis.Client) (*RateLimiter, error) {
	if formattedRate == "" {
		formattedRate = DefaultRate
	}
	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formattedRate, err)
	}

	var store limiter.Store
	if redisClient != nil {
		store, err = redisstore.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: storePrefix})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memorystore.NewStoreWithOptions(limiter.StoreOptions{Prefix: storePrefix})
	}

	return &RateLimiter{redisClient: redisClient, store: store, rate: rate}, nil
}

// Middleware returns the rate limiting middleware keyed by client IP
func (l *RateLimiter) Middleware() func(http.Handler) http.Handler {
	instance := limiter.New(l.store, l.rate)
	mw := stdlibmw.NewMiddleware(instance,
		stdlibmw.WithKeyGetter(request.ClientIP),
		stdlibmw.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Too Many Requests"}`))
		}),
	)
	return mw.Handler
}

// UsesRedis reports whether counters are shared through Redis
func (l *RateLimiter) UsesRedis() bool {
	return l.redisClient != nil
}

// Ping checks the Redis backend; the memory store is always reachable
func (l *RateLimiter) Ping(ctx context.Context) error {
	if l.redisClient == nil {
		return nil
	}
	return l.redisClient.Ping(ctx).Err()
}

// Close releases the Redis connection if there is one
func (l *RateLimiter) Close() error {
	if l.redisClient == nil {
		return nil
	}
	return l.redisClient.Close()
}
