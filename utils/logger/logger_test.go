package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestContextHandler_AddsCorrelationFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, false)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithUserID(ctx, "u1")

	logger.InfoContext(ctx, "account created")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "account created", entry["msg"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", entry["span_id"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "u1", entry["user_id"])
}

func TestContextHandler_EmptyContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, false)

	logger.InfoContext(context.Background(), "startup")

	entry := decodeLine(t, &buf)
	for _, key := range []string{"trace_id", "span_id", "request_id", "user_id"} {
		assert.NotContains(t, entry, key)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, false)

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestNew_WithOTel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, true)

	logger.With("component", "account_store").Info("inserted")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "account_store", entry["component"])
}

func TestLevelFromString(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, levelFromString(in), in)
	}
}

func TestKeyValue_GroupPrefix(t *testing.T) {
	b := newOTelBridge("test", slog.LevelInfo).WithGroup("http").WithGroup("request").(*otelBridge)

	kv := keyValue(b.prefix, slog.Int("size", 42))

	assert.Equal(t, "http.request.size", kv.Key)
	assert.Equal(t, int64(42), kv.Value.AsInt64())
}

func TestLogValue_Kinds(t *testing.T) {
	assert.Equal(t, int64(1500), logValue(slog.DurationValue(1500*time.Millisecond)).AsInt64())
	assert.Equal(t, "boom", logValue(slog.AnyValue(errors.New("boom"))).AsString())

	group := logValue(slog.GroupValue(slog.String("id", "u1"), slog.Bool("new", true))).AsMap()
	require.Len(t, group, 2)
	assert.Equal(t, "id", group[0].Key)
	assert.True(t, group[1].Value.AsBool())
}

func TestTee_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := tee{
		slog.NewJSONHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	logger := slog.New(h).With("component", "test")

	logger.Info("only first")
	assert.NotZero(t, a.Len())
	assert.Zero(t, b.Len())

	logger.Error("both")
	assert.Contains(t, b.String(), `"component":"test"`)
}
