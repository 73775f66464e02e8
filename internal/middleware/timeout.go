package middleware

import (
	"net/http"
	"time"
)

const (
	// DefaultRequestTimeout is the default request timeout (30 seconds)
	DefaultRequestTimeout = 30 * time.Second

	timeoutBody = `{"error":"Request Timeout"}`
)

// Timeout bounds how long a handler may run. The handler's context is
// cancelled at the deadline, which aborts in-flight Trello requests, and the
// client gets a 503 with a JSON error body.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, timeout, timeoutBody)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			th.ServeHTTP(&jsonTimeoutWriter{ResponseWriter: w}, r)
		})
	}
}

// jsonTimeoutWriter labels the timeout body as JSON. http.TimeoutHandler
// copies the handler's own headers before writing a normal response, so only
// the timeout path reaches WriteHeader without a Content-Type.
type jsonTimeoutWriter struct {
	http.ResponseWriter
}

func (w *jsonTimeoutWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(code)
}
