package middleware

import (
	"net/http"

	logpkg "github.com/benvon/board-stats/internal/logger"
	"github.com/benvon/board-stats/internal/request"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxRequestIDLength bounds client supplied ids
const maxRequestIDLength = 128

// RequestID assigns every request an id (reusing a sane incoming X-Request-ID),
// echoes it in the response and stores it, plus a logger tagged with it, in
// the request context.
func RequestID(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := logpkg.SanitizeString(r.Header.Get(request.RequestIDHeader), maxRequestIDLength)
			if id == "" || len(id) > maxRequestIDLength {
				id = uuid.NewString()
			}

			w.Header().Set(request.RequestIDHeader, id)

			ctx := request.WithRequestID(r.Context(), id)
			ctx = logpkg.WithContext(ctx, logger.With(zap.String("request_id", id)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
