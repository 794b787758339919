package xstat

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/metric"
)

const (
	metricOperationTotal    = "tracekit.operation.total"
	metricOperationFailed   = "tracekit.operation.failed"
	metricOperationDuration = "tracekit.operation.duration"
)

// Counters 聚合全部被拦截操作的生命周期计数。
//
// 所有方法并发安全。计数只增不减；进程存续期间不重置。
type Counters struct {
	executed   atomic.Uint64
	failed     atomic.Uint64
	durationNs atomic.Int64

	// OTel 镜像，可为 nil（未配置 meter 时）。
	total    metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

// CountersOption 配置 Counters 的选项函数。
type CountersOption func(*countersConfig)

type countersConfig struct {
	meter metric.Meter
}

// WithMeter 配置 OTel Meter，计数器变更将同时镜像为 OTel 指标。
func WithMeter(meter metric.Meter) CountersOption {
	return func(cfg *countersConfig) {
		if meter != nil {
			cfg.meter = meter
		}
	}
}

// NewCounters 创建计数器。
//
// 配置了 [WithMeter] 时会创建三个 OTel 指标
//（operation.total/failed/duration），创建失败返回包装了
// [ErrCreateInstrument] 的错误。
func NewCounters(opts ...CountersOption) (*Counters, error) {
	cfg := &countersConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	c := &Counters{}
	if cfg.meter == nil {
		return c, nil
	}

	var err error
	c.total, err = cfg.meter.Int64Counter(
		metricOperationTotal,
		metric.WithDescription("total intercepted operations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateInstrument, err)
	}
	c.failures, err = cfg.meter.Int64Counter(
		metricOperationFailed,
		metric.WithDescription("failed intercepted operations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateInstrument, err)
	}
	c.duration, err = cfg.meter.Float64Histogram(
		metricOperationDuration,
		metric.WithDescription("intercepted operation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateInstrument, err)
	}
	return c, nil
}

// IncrExecuted 记一次操作执行。
func (c *Counters) IncrExecuted() {
	c.executed.Add(1)
	if c.total != nil {
		c.total.Add(context.Background(), 1)
	}
}

// IncrFailed 记一次操作失败。
func (c *Counters) IncrFailed() {
	c.failed.Add(1)
	if c.failures != nil {
		c.failures.Add(context.Background(), 1)
	}
}

// AddDuration 累计一次操作耗时。负值忽略。
//
// 设计决策: 以原子 int64 纳秒累加而非浮点秒。并发包装器的更新
// 绝不丢失；换取的代价仅是 Snapshot 时的一次除法。
func (c *Counters) AddDuration(d time.Duration) {
	if d < 0 {
		return
	}
	c.durationNs.Add(int64(d))
	if c.duration != nil {
		c.duration.Record(context.Background(), d.Seconds())
	}
}

// Record 记录一次完整的包装器执行：executed+1，err 非 nil 时
// failed+1，并累计耗时。这是拦截包装器的便捷入口。
func (c *Counters) Record(d time.Duration, err error) {
	c.IncrExecuted()
	if err != nil {
		c.IncrFailed()
	}
	c.AddDuration(d)
}

// Snapshot 聚合计数的时间点视图。
type Snapshot struct {
	// Executed 已执行操作数。
	Executed uint64
	// Failed 失败操作数。
	Failed uint64
	// TotalDuration 累计执行耗时。
	TotalDuration time.Duration
}

// TotalSeconds 返回累计耗时的秒数。
func (s Snapshot) TotalSeconds() float64 {
	return s.TotalDuration.Seconds()
}

// Snapshot 返回当前计数的快照。
//
// 三个字段分别原子读取，不保证跨字段的线性一致；
// 单个字段不丢失、不重复计数。
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Executed:      c.executed.Load(),
		Failed:        c.failed.Load(),
		TotalDuration: time.Duration(c.durationNs.Load()),
	}
}
