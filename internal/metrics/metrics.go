package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the Prometheus collectors of the service.
//
//   - board_stats_trello_requests_total{endpoint,status}
//   - board_stats_trello_request_duration_seconds{endpoint}
//   - board_stats_http_requests_total{route,method,status}
//   - board_stats_http_request_duration_seconds{route,method}
type Metrics struct {
	TrelloRequestsTotal   *prometheus.CounterVec
	TrelloRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
}

// New returns the process-wide metrics, registering them on first use
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			TrelloRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "board_stats_trello_requests_total",
					Help: "Total number of requests made to the Trello API",
				},
				[]string{"endpoint", "status"},
			),
			TrelloRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "board_stats_trello_request_duration_seconds",
					Help:    "Latency of Trello API requests",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"endpoint"},
			),
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "board_stats_http_requests_total",
					Help: "Total number of HTTP requests served",
				},
				[]string{"route", "method", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "board_stats_http_request_duration_seconds",
					Help:    "Latency of served HTTP requests",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"route", "method"},
			),
		}
	})
	return globalMetrics
}

// ObserveTrelloRequest records one outbound call. status is the HTTP status
// code, or 0 when the request never got a response.
func (m *Metrics) ObserveTrelloRequest(endpoint string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.TrelloRequestsTotal.WithLabelValues(endpoint, label).Inc()
	m.TrelloRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
