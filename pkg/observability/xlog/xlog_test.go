package xlog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

// ============================================================================
// ParseLevel 测试
// ============================================================================

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warn ", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"", LevelInfo, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}

// ============================================================================
// Builder 测试
// ============================================================================

func buildJSON(t *testing.T, buf *bytes.Buffer, opts ...func(*Builder)) LoggerWithLevel {
	t.Helper()
	b := New().SetOutput(buf).SetFormat("json")
	for _, opt := range opts {
		opt(b)
	}
	logger, cleanup, err := b.Build()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return logger
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestBuilder_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := buildJSON(t, &buf)
	logger.Info(context.Background(), "hello", slog.String("k", "v"))

	m := decodeLine(t, &buf)
	assert.Equal(t, "hello", m["msg"])
	assert.Equal(t, "v", m["k"])
}

func TestBuilder_InvalidFormat(t *testing.T) {
	t.Parallel()

	_, _, err := New().SetFormat("xml").Build()
	require.Error(t, err)
}

func TestBuilder_InvalidLevelString(t *testing.T) {
	t.Parallel()

	_, _, err := New().SetLevelString("verbose").Build()
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestBuilder_EmptyRotationFilename(t *testing.T) {
	t.Parallel()

	_, _, err := New().SetRotation("").Build()
	assert.ErrorIs(t, err, ErrEmptyFilename)
}

func TestBuilder_RotationWritesFile(t *testing.T) {
	t.Parallel()

	file := t.TempDir() + "/app.log"
	logger, cleanup, err := New().
		SetRotation(file, WithMaxSizeMB(1), WithMaxBackups(1), WithMaxAgeDays(1)).
		SetFormat("json").
		Build()
	require.NoError(t, err)

	logger.Info(context.Background(), "rotated")
	cleanup()

	assert.FileExists(t, file)
}

// ============================================================================
// 动态级别测试
// ============================================================================

func TestLogger_DynamicLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := buildJSON(t, &buf)

	logger.Debug(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.GetLevel())
	assert.True(t, logger.Enabled(context.Background(), LevelDebug))

	logger.Debug(context.Background(), "kept")
	assert.Positive(t, buf.Len())
}

func TestLogger_With(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := buildJSON(t, &buf)

	derived := logger.With(slog.String("component", "xhook"))
	derived.Info(context.Background(), "msg")

	m := decodeLine(t, &buf)
	assert.Equal(t, "xhook", m["component"])
}

// ============================================================================
// OTel 追踪上下文注入测试
// ============================================================================

func spanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0123456789abcdef")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestLogger_EnrichInjectsTraceIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := buildJSON(t, &buf)
	logger.Info(spanContext(t), "traced")

	m := decodeLine(t, &buf)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", m["trace_id"])
	assert.Equal(t, "0123456789abcdef", m["span_id"])
}

func TestLogger_EnrichDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := buildJSON(t, &buf, func(b *Builder) { b.SetEnrich(false) })
	logger.Info(spanContext(t), "untraced")

	m := decodeLine(t, &buf)
	assert.NotContains(t, m, "trace_id")
}

// ============================================================================
// Discard 测试
// ============================================================================

func TestDiscard(t *testing.T) {
	t.Parallel()

	logger := Discard()
	logger.Info(context.Background(), "nowhere")
	assert.Equal(t, logger, logger.With(slog.String("k", "v")))
}
