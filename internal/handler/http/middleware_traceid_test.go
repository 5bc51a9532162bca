package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeWithTraceID(log *logger.Logger, traceIDHeaderValue string) (*httptest.ResponseRecorder, *http.Request) {
	var capturedReq *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		logger.FromRequest(r).Info().Msg("inside")
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if traceIDHeaderValue != "" {
		req.Header.Set(traceIDHeader, traceIDHeaderValue)
	}

	rr := httptest.NewRecorder()
	TraceID(log)(next).ServeHTTP(rr, req)
	return rr, capturedReq
}

func TestTraceID_GeneratesUUID(t *testing.T) {
	rr, req := executeWithTraceID(logger.Nop(), "")

	traceID := rr.Header().Get(traceIDHeader)
	_, err := uuid.Parse(traceID)
	require.NoError(t, err)

	require.NotNil(t, req)
	assert.Equal(t, traceID, middleware.GetReqID(req.Context()))
}

func TestTraceID_KeepsCallerTraceID(t *testing.T) {
	rr, req := executeWithTraceID(logger.Nop(), "caller-trace")

	assert.Equal(t, "caller-trace", rr.Header().Get(traceIDHeader))
	assert.Equal(t, "caller-trace", middleware.GetReqID(req.Context()))
}

func TestTraceID_UniquePerRequest(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		rr, _ := executeWithTraceID(logger.Nop(), "")
		id := rr.Header().Get(traceIDHeader)
		_, dup := seen[id]
		require.False(t, dup, "duplicate trace id %s", id)
		seen[id] = struct{}{}
	}
}

func TestTraceID_RequestLoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf)}

	executeWithTraceID(log, "abc-123")

	assert.Contains(t, buf.String(), `"trace_id":"abc-123"`)
	assert.Contains(t, buf.String(), `"message":"inside"`)
}
