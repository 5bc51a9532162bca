package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/utils"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const traceIDHeader = "X-Trace-ID"

// TraceID tags every request with a trace id, taken from the X-Trace-ID
// header when the caller sent one. The id is echoed back, stored where
// chi's middleware.GetReqID finds it, and attached to a child of log which
// becomes the request logger.
func TraceID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceIDHeader)
			if traceID == "" {
				traceID = utils.NewRequestID()
			}

			l := log.GetChildLogger()
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("trace_id", traceID)
			})

			ctx := context.WithValue(r.Context(), middleware.RequestIDKey, traceID)
			r = r.WithContext(l.WithContext(ctx))

			w.Header().Set(traceIDHeader, traceID)
			next.ServeHTTP(w, r)
		})
	}
}
