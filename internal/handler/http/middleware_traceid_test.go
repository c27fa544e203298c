package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-cred-guard/internal/logger"
	"github.com/MKhiriev/go-cred-guard/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedHandler(buf *bytes.Buffer) *Handler {
	return &Handler{
		traceIDs: utils.NewTraceIDGenerator(),
		logger:   &logger.Logger{Logger: zerolog.New(buf)},
	}
}

func TestWithTraceID_ReusesIncomingID(t *testing.T) {
	var buf bytes.Buffer
	h := newBufferedHandler(&buf)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Info().Msg("inside")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "my-trace")
	rec := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rec, req)

	assert.Equal(t, "my-trace", rec.Header().Get(traceIDHeader))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "my-trace", entry["trace_id"])
}

func TestWithTraceID_GeneratesID(t *testing.T) {
	var buf bytes.Buffer
	h := newBufferedHandler(&buf)

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	first := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	id := first.Header().Get(traceIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, second.Header().Get(traceIDHeader))
}
