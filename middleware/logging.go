package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/upb/cognito-auth-gateway/internal/observability"
	"go.uber.org/zap"
)

// RequestLogger carries chi's request ID into the gateway context, attaches a
// request-scoped zap logger and logs one line per request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			if id := chimw.GetReqID(ctx); id != "" {
				ctx = WithRequestID(ctx, id)
			}
			ctx, requestID := EnsureRequestID(ctx)

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx = observability.WithLogger(ctx, reqLogger)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
