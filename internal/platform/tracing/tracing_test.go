package tracing

import (
	"context"
	"testing"

	"petpulse/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_DisabledIsNoop(t *testing.T) {
	tp, shutdown, err := Setup(context.Background(), config.TracingConfig{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, tp)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid(), "noop spans carry no ids")
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_EnabledBuildsProvider(t *testing.T) {
	// El exporter gRPC conecta en forma lazy, no hace falta un collector real.
	tp, shutdown, err := Setup(context.Background(), config.TracingConfig{
		Enabled:     true,
		Endpoint:    "127.0.0.1:4317",
		Insecure:    true,
		ServiceName: "petpulse-test",
		SampleRatio: 1,
	})
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Con el contexto cancelado el flush no espera al collector.
	_ = shutdown(ctx)
}
