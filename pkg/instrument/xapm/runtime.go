package xapm

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/omeyang/tracekit/pkg/config/xconf"
	"github.com/omeyang/tracekit/pkg/intercept/xhook"
	"github.com/omeyang/tracekit/pkg/lifecycle/xrun"
	"github.com/omeyang/tracekit/pkg/observability/xlog"
	"github.com/omeyang/tracekit/pkg/observability/xsampling"
	"github.com/omeyang/tracekit/pkg/observability/xspan"
	"github.com/omeyang/tracekit/pkg/observability/xstat"
	"github.com/omeyang/tracekit/pkg/util/xproc"
)

// tracerName 导出 span 时使用的 instrumentation scope 名称。
const tracerName = "github.com/omeyang/tracekit/pkg/instrument/xapm"

// newExporter 是 OTLP 导出器的构建函数，包级变量支持测试中 mock。
var newExporter = func(ctx context.Context, endpoint string) (sdktrace.SpanExporter, error) {
	return otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
}

// Runtime 是装配完成的追踪运行时。
//
// 由 [Init] 创建；所有方法并发安全。Shutdown 后 Instrument 返回
// [ErrRuntimeClosed]，已安装的包装仍然存在但只剩纯转发行为之外的
// 计数更新（span 发布到已关闭的 provider 会被丢弃）。
type Runtime struct {
	settings    xconf.Settings
	logger      xlog.Logger
	logCleanup  func()
	enabled     bool
	sink        xspan.Sink
	recent      *xspan.RecentSink
	provider    *sdktrace.TracerProvider
	counters    *xstat.Counters
	procSampler *xproc.Sampler
	sampler     xsampling.Sampler
	group       *xrun.Group

	mu         sync.Mutex
	registries map[xhook.Host]*xhook.Registry
	closed     bool
}

// Init 装配追踪运行时。
//
// 配置错误（非法采样率、非法 cron 表达式等）作为错误返回，在启动时
// 暴露；追踪后端不可用（导出器构建失败）不是错误——记一条 Warn 后
// 返回禁用态的 Runtime，拦截与聚合计数照常工作。
func Init(ctx context.Context, opts ...Option) (*Runtime, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var o initOptions
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&o)
	}

	settings, err := loadSettings(&o)
	if err != nil {
		return nil, err
	}

	logger, logCleanup, err := buildLogger(&o, settings)
	if err != nil {
		return nil, err
	}

	var counterOpts []xstat.CountersOption
	if o.meter != nil {
		counterOpts = append(counterOpts, xstat.WithMeter(o.meter))
	}
	counters, err := xstat.NewCounters(counterOpts...)
	if err != nil {
		logCleanup()
		return nil, err
	}

	rt := &Runtime{
		settings:    settings,
		logger:      logger,
		logCleanup:  logCleanup,
		counters:    counters,
		procSampler: xproc.NewSampler(),
		registries:  make(map[xhook.Host]*xhook.Registry),
	}

	rt.buildBackend(ctx, &o)

	sampler, err := buildSampler(settings, rt.enabled)
	if err != nil {
		logCleanup()
		return nil, err
	}
	rt.sampler = sampler

	reporterOpts := []xstat.ReporterOption{
		xstat.WithLogger(logger),
		xstat.WithInterval(settings.StatsInterval),
	}
	if settings.StatsSchedule != "" {
		reporterOpts = append(reporterOpts, xstat.WithSchedule(settings.StatsSchedule))
	}
	reporter, err := xstat.NewReporter(counters, reporterOpts...)
	if err != nil {
		logCleanup()
		return nil, err
	}

	// 运行时生命周期由 Shutdown 驱动，不随 Init 的 ctx 取消
	group, _ := xrun.NewGroup(context.WithoutCancel(ctx), xrun.WithName("xapm"))
	group.Go(reporter.Run)
	rt.group = group

	logger.Info(ctx, "tracing runtime initialized",
		slog.String("service", settings.Service),
		slog.String("environment", settings.Environment),
		slog.Bool("enabled", rt.enabled),
		slog.Float64("sample_rate", settings.SampleRate),
	)
	return rt, nil
}

// loadSettings 按 选项注入 > 配置文件 > 环境变量 的顺序得到配置。
func loadSettings(o *initOptions) (xconf.Settings, error) {
	if o.settings != nil {
		settings := *o.settings
		if err := settings.Validate(); err != nil {
			return xconf.Settings{}, err
		}
		return settings, nil
	}
	return xconf.Load(o.configPath)
}

// buildLogger 返回日志器与其清理函数。外部注入的日志器不归运行时管理。
func buildLogger(o *initOptions, settings xconf.Settings) (xlog.Logger, func(), error) {
	if o.logger != nil {
		return o.logger, func() {}, nil
	}
	logger, cleanup, err := xlog.New().
		SetLevelString(settings.LogLevel).
		SetFormat(settings.LogFormat).
		Build()
	if err != nil {
		return nil, nil, err
	}
	return logger, cleanup, nil
}

// buildBackend 装配 span 发布链路，设置 rt.enabled/sink/recent/provider。
//
// 导出器构建失败走降级路径：Warn 一次，后续所有调用纯计数、不产生 span。
func (rt *Runtime) buildBackend(ctx context.Context, o *initOptions) {
	var sink xspan.Sink

	switch {
	case o.sink != nil:
		sink = o.sink
		rt.enabled = true
	case !rt.settings.TraceEnabled:
		sink = xspan.NoopSink{}
	default:
		exporter, err := newExporter(ctx, rt.settings.AgentEndpoint)
		if err != nil {
			rt.logger.Warn(ctx, "trace exporter unavailable, tracing disabled",
				slog.String("endpoint", rt.settings.AgentEndpoint),
				slog.Any("error", err),
			)
			sink = xspan.NoopSink{}
			break
		}
		rt.provider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(buildResource(rt.settings)),
		)
		sink = xspan.NewOTelSink(rt.provider.Tracer(tracerName))
		rt.enabled = true
	}

	if o.recentCapacity > 0 {
		if recent, err := xspan.NewRecentSink(o.recentCapacity, sink); err == nil {
			rt.recent = recent
			sink = recent
		}
	}
	rt.sink = sink
}

// buildResource 生成导出 span 的资源属性。
func buildResource(settings xconf.Settings) *resource.Resource {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", settings.Service),
	}
	if settings.Environment != "" {
		attrs = append(attrs, attribute.String("deployment.environment", settings.Environment))
	}
	if settings.Version != "" {
		attrs = append(attrs, attribute.String("service.version", settings.Version))
	}
	return resource.NewSchemaless(attrs...)
}

// buildSampler 根据配置构建采样器。禁用态直接 Never，省掉热路径开销。
func buildSampler(settings xconf.Settings, enabled bool) (xsampling.Sampler, error) {
	switch {
	case !enabled, settings.SampleRate <= 0:
		return xsampling.Never(), nil
	case settings.SampleRate >= 1:
		return xsampling.Always(), nil
	default:
		// 按 target 一致采样：同一拦截点的所有调用要么都上报、要么都不上报
		return xsampling.NewKeyBasedSampler(settings.SampleRate, targetFromContext)
	}
}

// Settings 返回运行时的冻结配置。
func (rt *Runtime) Settings() xconf.Settings {
	return rt.settings
}

// Enabled 返回追踪上报是否可用。false 时拦截与计数照常，无 span。
func (rt *Runtime) Enabled() bool {
	return rt.enabled
}

// Counters 返回聚合计数器，供宿主自行读取快照。
func (rt *Runtime) Counters() *xstat.Counters {
	return rt.counters
}

// RecentRecords 返回最近的 span 记录（需 [WithRecentSpans] 启用）。
func (rt *Runtime) RecentRecords() []xspan.Record {
	if rt.recent == nil {
		return nil
	}
	return rt.recent.Records()
}

// Shutdown 关闭运行时：停止统计上报，冲刷并关闭追踪 provider。
// 幂等，重复调用返回 nil。
func (rt *Runtime) Shutdown(ctx context.Context) error {
	rt.mu.Lock()
	if rt.closed {
		rt.mu.Unlock()
		return nil
	}
	rt.closed = true
	rt.mu.Unlock()

	rt.group.Cancel(nil)
	err := rt.group.Wait()

	if rt.provider != nil {
		err = errors.Join(err, rt.provider.ForceFlush(ctx), rt.provider.Shutdown(ctx))
	}

	rt.logger.Info(ctx, "tracing runtime stopped")
	rt.logCleanup()
	return err
}
