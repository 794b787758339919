package xstat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/omeyang/tracekit/pkg/observability/xlog"
)

// DefaultInterval 默认上报间隔。
const DefaultInterval = 60 * time.Second

// Reporter 周期性输出聚合计数的后台服务。
//
// Run 应交给生命周期管理器（如 xrun.Group）运行；宿主进程退出时
// 取消 context 即可，Reporter 会在一个周期内停止。
type Reporter struct {
	counters *Counters
	logger   xlog.Logger
	interval time.Duration
	schedule cron.Schedule
	specStr  string
}

// ReporterOption 配置 Reporter 的选项函数。
type ReporterOption func(*reporterConfig)

type reporterConfig struct {
	logger   xlog.Logger
	interval time.Duration
	spec     string
}

// WithLogger 设置统计日志输出的 Logger。默认丢弃。
func WithLogger(logger xlog.Logger) ReporterOption {
	return func(cfg *reporterConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithInterval 设置固定上报间隔。默认 [DefaultInterval]。
func WithInterval(interval time.Duration) ReporterOption {
	return func(cfg *reporterConfig) {
		cfg.interval = interval
	}
}

// WithSchedule 以 cron 表达式设置上报时机（支持 "@every 1m" 描述符）。
// 设置后优先于固定间隔。
func WithSchedule(spec string) ReporterOption {
	return func(cfg *reporterConfig) {
		cfg.spec = spec
	}
}

// NewReporter 创建 Reporter。
//
// counters 为 nil 返回 [ErrNilCounters]；间隔非正返回
// [ErrInvalidInterval]；cron 表达式非法返回包装了
// [ErrInvalidSchedule] 的错误。
func NewReporter(counters *Counters, opts ...ReporterOption) (*Reporter, error) {
	if counters == nil {
		return nil, ErrNilCounters
	}

	cfg := &reporterConfig{
		logger:   xlog.Discard(),
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.interval <= 0 {
		return nil, ErrInvalidInterval
	}

	r := &Reporter{
		counters: counters,
		logger:   cfg.logger,
		interval: cfg.interval,
	}
	if cfg.spec != "" {
		schedule, err := cron.ParseStandard(cfg.spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSchedule, cfg.spec, err)
		}
		r.schedule = schedule
		r.specStr = cfg.spec
	}
	return r, nil
}

// Run 运行上报循环直到 ctx 取消，返回 ctx.Err()。
//
// 每次唤醒读取一次快照；executed == 0 时静默跳过。
// 休眠通过 timer/ticker 完成，期间不持有任何锁。
func (r *Reporter) Run(ctx context.Context) error {
	if r.schedule != nil {
		return r.runSchedule(ctx)
	}
	return r.runInterval(ctx)
}

func (r *Reporter) runInterval(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.emit(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// runSchedule 按 cron 计划逐次计算下一个唤醒点。
//
// 设计决策: 直接用 Schedule.Next + timer 而非启动 cron.Cron 实例。
// 单任务场景下省去调度器 goroutine 与 Stop 汇合，取消语义与
// runInterval 完全一致。
func (r *Reporter) runSchedule(ctx context.Context) error {
	timer := time.NewTimer(time.Until(r.schedule.Next(time.Now())))
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			r.emit(ctx)
			timer.Reset(time.Until(r.schedule.Next(time.Now())))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// emit 输出一条统计日志；无任何已执行操作时跳过。
func (r *Reporter) emit(ctx context.Context) {
	snap := r.counters.Snapshot()
	if snap.Executed == 0 {
		return
	}
	r.logger.Info(ctx, "apm stats",
		slog.Uint64("executed", snap.Executed),
		slog.Uint64("failed", snap.Failed),
		slog.Float64("total_duration_seconds", snap.TotalSeconds()),
	)
}
