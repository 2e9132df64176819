package middleware

import (
	"net"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/bookkeeper/internal/http/ban"
	rl "github.com/rogerio-castellano/bookkeeper/internal/http/rate_limiter"
	logx "github.com/rogerio-castellano/bookkeeper/pkg/logger"
)

const RequestIDHeader = "X-Request-Id"

// RequestLogger tags each request with an id, stores a child logger in the
// request context and logs the outcome.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := logx.Logger().With().Str("request_id", id).Logger()
		ctx := logger.WithContext(r.Context())

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		event := zerolog.Ctx(ctx).Info()
		if status >= http.StatusInternalServerError {
			event = zerolog.Ctx(ctx).Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// RateLimit throttles each client to the configured rate. A client that keeps
// hitting the limit collects strikes and is banned when ban tracking is on.
func RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		client := clientIP(r)
		banned, err := ban.IsBanned(r.Context(), client)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("ban lookup failed")
		}
		if banned {
			http.Error(w, "too many requests: client banned", http.StatusForbidden)
			return
		}

		if !rl.GetVisitor(client).Allow() {
			if _, err := ban.AddStrike(r.Context(), client, r.URL.Path); err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("recording strike failed")
			}
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
