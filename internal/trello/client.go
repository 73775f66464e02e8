package trello

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/benvon/board-stats/internal/logger"
	"github.com/benvon/board-stats/internal/metrics"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Trello REST API root
	DefaultBaseURL = "https://api.trello.com/1"

	defaultTimeout     = 30 * time.Second
	defaultRateLimit   = 10 // requests per second
	defaultBurst       = 10
	defaultConcurrency = 8

	// maxErrorBodyBytes bounds how much of an error response is kept
	maxErrorBodyBytes = 512
)

// Client talks to the Trello REST API for a single board
type Client struct {
	baseURL     string
	apiKey      string
	apiToken    string
	boardID     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	concurrency int
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another API root (tests, proxies)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit throttles outbound requests to perSecond with the given burst.
// A non-positive perSecond disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithConcurrency caps parallel requests issued by the batch helpers
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger used for failed requests
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records request counts and latency
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client for boardID authenticated with apiKey and apiToken
func NewClient(apiKey, apiToken, boardID string, opts ...Option) (*Client, error) {
	if apiKey == "" || apiToken == "" || boardID == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		apiToken: apiToken,
		boardID:  boardID,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter:     rate.NewLimiter(rate.Limit(defaultRateLimit), defaultBurst),
		concurrency: defaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BoardID returns the configured board identifier
func (c *Client) BoardID() string {
	return c.boardID
}

// Concurrency returns the cap used for batched requests
func (c *Client) Concurrency() int {
	return c.concurrency
}

// get issues an authenticated GET for path and decodes the JSON body into out
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to build request url: %w", err)
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("key", c.apiKey)
	q.Set("token", c.apiToken)
	u.RawQuery = q.Encode()
	safeURL := logger.RedactURL(u)

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error for %s: %w", safeURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", safeURL, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveTrelloRequest(endpoint, 0, time.Since(start))
		// url.Error embeds the full URL including credentials
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		c.logger.Error("trello_request_failed",
			zap.String("endpoint", endpoint),
			zap.String("url", safeURL),
			zap.String("error", logger.SanitizeError(err)),
		)
		return fmt.Errorf("failed to request %s: %w", safeURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	c.metrics.ObserveTrelloRequest(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			URL:        safeURL,
			Message:    strings.TrimSpace(logger.SanitizeString(string(body), maxErrorBodyBytes)),
		}
		c.logger.Error("trello_request_failed",
			zap.String("endpoint", endpoint),
			zap.String("url", safeURL),
			zap.Int("status_code", resp.StatusCode),
		)
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error("trello_response_decode_failed",
			zap.String("endpoint", endpoint),
			zap.String("url", safeURL),
			zap.Error(err),
		)
		return fmt.Errorf("failed to decode response from %s: %w", safeURL, err)
	}

	c.logger.Debug("trello_request_completed",
		zap.String("endpoint", endpoint),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
