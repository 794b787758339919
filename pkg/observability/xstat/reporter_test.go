package xstat

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/omeyang/tracekit/pkg/observability/xlog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// syncBuffer 并发安全的日志缓冲，测试读与 Reporter 写可能交叠。
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newBufLogger(t *testing.T) (*syncBuffer, xlog.Logger) {
	t.Helper()
	buf := &syncBuffer{}
	logger, cleanup, err := xlog.New().SetOutput(buf).SetFormat("json").Build()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return buf, logger
}

// ============================================================================
// 构造参数测试
// ============================================================================

func TestNewReporter_NilCounters(t *testing.T) {
	t.Parallel()

	_, err := NewReporter(nil)
	assert.ErrorIs(t, err, ErrNilCounters)
}

func TestNewReporter_InvalidInterval(t *testing.T) {
	t.Parallel()

	c, err := NewCounters()
	require.NoError(t, err)

	_, err = NewReporter(c, WithInterval(0))
	assert.ErrorIs(t, err, ErrInvalidInterval)
	_, err = NewReporter(c, WithInterval(-time.Second))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestNewReporter_InvalidSchedule(t *testing.T) {
	t.Parallel()

	c, err := NewCounters()
	require.NoError(t, err)

	_, err = NewReporter(c, WithSchedule("not a cron spec"))
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestNewReporter_EverySchedule(t *testing.T) {
	t.Parallel()

	c, err := NewCounters()
	require.NoError(t, err)

	r, err := NewReporter(c, WithSchedule("@every 1m"))
	require.NoError(t, err)
	assert.NotNil(t, r)
}

// ============================================================================
// 上报行为测试
// ============================================================================

func runFor(t *testing.T, r *Reporter, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	err := r.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReporter_SilentWhenNothingExecuted(t *testing.T) {
	t.Parallel()

	c, err := NewCounters()
	require.NoError(t, err)

	buf, logger := newBufLogger(t)
	r, err := NewReporter(c, WithInterval(5*time.Millisecond), WithLogger(logger))
	require.NoError(t, err)

	runFor(t, r, 30*time.Millisecond)
	assert.Empty(t, buf.String())
}

func TestReporter_EmitsAfterExecution(t *testing.T) {
	t.Parallel()

	c, err := NewCounters()
	require.NoError(t, err)
	c.Record(2*time.Second, nil)
	c.Record(time.Second, errors.New("boom"))

	buf, logger := newBufLogger(t)
	r, err := NewReporter(c, WithInterval(5*time.Millisecond), WithLogger(logger))
	require.NoError(t, err)

	runFor(t, r, 50*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "apm stats")
	assert.Contains(t, out, `"executed":2`)
	assert.Contains(t, out, `"failed":1`)
}

func TestReporter_StopsWithinOneInterval(t *testing.T) {
	t.Parallel()

	c, err := NewCounters()
	require.NoError(t, err)

	r, err := NewReporter(c, WithInterval(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("reporter did not stop within one interval")
	}
}

func TestReporter_ScheduleEmits(t *testing.T) {
	t.Parallel()

	c, err := NewCounters()
	require.NoError(t, err)
	c.Record(time.Second, nil)

	buf, logger := newBufLogger(t)
	r, err := NewReporter(c, WithSchedule("@every 1s"), WithLogger(logger))
	require.NoError(t, err)

	runFor(t, r, 1200*time.Millisecond)
	assert.True(t, strings.Contains(buf.String(), "apm stats"))
}
