package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Logging writes one access line per request through the request logger
// installed by TraceID. The line carries the matched chi route pattern, so
// requests to one endpoint group together whatever their query string, and
// server errors are logged at error level.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		// net/http answers 200 for a handler that writes nothing
		status := lw.status
		if status == 0 {
			status = http.StatusOK
		}

		event := accessEvent(logger.FromRequest(r), status).
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Str("remote_addr", r.RemoteAddr)

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				event = event.Str("route", pattern)
			}
		}
		event.Send()
	})
}

func accessEvent(log *logger.Logger, status int) *zerolog.Event {
	if status >= http.StatusInternalServerError {
		return log.Error()
	}
	return log.Info()
}
