package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

func TestFromContextReturnsNopWhenMissing(t *testing.T) {
	l := FromContext(context.Background())
	assert.NotNil(t, l)
}

func TestWithRequestIDEnrichesLogs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), base, "req-123")
	enriched.Info("hello")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
}

func TestLPicksUpContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx := WithContext(context.Background(), base)
	ctx = context.WithValue(ctx, UserIDKey, "user-1")

	L(ctx).Info("scoped")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "user-1", entries[0].ContextMap()["user_id"])
}
