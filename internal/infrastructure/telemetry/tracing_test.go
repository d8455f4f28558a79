package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/organizer/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer installs an in-memory span recorder as the global
// tracer provider and returns it with a cleanup function.
func setupTestTracer(t *testing.T) (*tracetest.SpanRecorder, func()) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	return sr, func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	}
}

func hasAttribute(spans []sdktrace.ReadOnlySpan, key, value string) bool {
	for _, s := range spans {
		for _, attr := range s.Attributes() {
			if string(attr.Key) == key && attr.Value.AsString() == value {
				return true
			}
		}
	}
	return false
}

func TestStartSpan(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "settle.payment")
	require.NotNil(t, span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "settle.payment", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
}

func TestStartSpan_WithOptions(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	userID := uuid.New()
	_, span := telemetry.StartSpan(context.Background(), "event.create",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, userID),
		telemetry.WithSpanKind(trace.SpanKindClient),
	)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())
	// uuid.UUID goes through the fmt.Stringer branch
	assert.True(t, hasAttribute(spans, telemetry.SpanAttrUserID, userID.String()))
}

func TestStartServiceSpan_Naming(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartServiceSpan(context.Background(), "installment", "settle")
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "installment.settle", spans[0].Name())
}

func TestRecordError(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "failing.op")
	telemetry.RecordError(span, errors.New("payment already settled"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "payment already settled", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
}

func TestRecordError_NilSafe(t *testing.T) {
	_, cleanup := setupTestTracer(t)
	defer cleanup()

	// Neither a nil span nor a nil error may panic
	telemetry.RecordError(nil, errors.New("boom"))

	_, span := telemetry.StartSpan(context.Background(), "fine.op")
	telemetry.RecordError(span, nil)
	telemetry.SetOK(span)
	span.End()
}

func TestAddEvent(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "event.create")
	telemetry.AddEvent(span, "series_expanded", telemetry.SpanAttrOccurrences, 12)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "series_expanded", events[0].Name)
}

func TestGetTraceID(t *testing.T) {
	_, cleanup := setupTestTracer(t)
	defer cleanup()

	assert.Empty(t, telemetry.GetTraceID(context.Background()))

	ctx, span := telemetry.StartSpan(context.Background(), "traced.op")
	defer span.End()
	assert.NotEmpty(t, telemetry.GetTraceID(ctx))
}
