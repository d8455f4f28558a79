package telemetry_test

import (
	"context"
	"testing"

	"github.com/organizer/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	cfg := telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:4317",
		SamplingRatio:     1.0,
		ServiceName:       "test-service",
	}

	tp, err := telemetry.NewTracerProvider(ctx, cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())

	gotCfg := tp.GetConfig()
	assert.Equal(t, cfg.ServiceName, gotCfg.ServiceName)
	assert.False(t, gotCfg.Enabled)

	// Lifecycle methods are no-ops when disabled
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestTracerProvider_DisabledStillHandsOutTracers(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{Enabled: false}, logger)
	require.NoError(t, err)

	// Falls back to the global provider, so spans are valid no-ops
	tracer := tp.Tracer("test")
	require.NotNil(t, tracer)
	_, span := tracer.Start(ctx, "noop-span")
	span.End()
}
