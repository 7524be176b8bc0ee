package router_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"petpulse/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestHTTP_ServiceSpansUseRouterProvider(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	h := router.NewRouter(router.Options{TracerProvider: tp})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pets", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var server, list sdktrace.ReadOnlySpan
	for _, s := range rec.Ended() {
		switch {
		case s.SpanKind() == trace.SpanKindServer:
			server = s
		case s.Name() == "pets.List":
			list = s
		}
	}
	require.NotNil(t, server)
	require.NotNil(t, list)

	assert.True(t, strings.HasPrefix(server.Name(), "GET /pets"))
	assert.Equal(t, server.SpanContext().TraceID(), list.SpanContext().TraceID())
	assert.Equal(t, server.SpanContext().SpanID(), list.Parent().SpanID())
}
