package xapm

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/omeyang/tracekit/pkg/config/xconf"
	"github.com/omeyang/tracekit/pkg/observability/xlog"
	"github.com/omeyang/tracekit/pkg/observability/xspan"
)

// Option 配置 Init 的选项函数。nil Option 被忽略。
type Option func(*initOptions)

type initOptions struct {
	settings       *xconf.Settings
	configPath     string
	logger         xlog.Logger
	sink           xspan.Sink
	meter          metric.Meter
	recentCapacity int
}

// WithSettings 直接注入配置，跳过文件与环境变量加载。
func WithSettings(settings xconf.Settings) Option {
	return func(o *initOptions) {
		s := settings
		o.settings = &s
	}
}

// WithConfigFile 设置配置文件路径（YAML/JSON），
// 加载后仍应用 TRACEKIT_* 环境变量覆盖。
func WithConfigFile(path string) Option {
	return func(o *initOptions) {
		o.configPath = path
	}
}

// WithLogger 注入外部日志器。未设置时按配置的 log_level/log_format
// 构建内部日志器。
func WithLogger(logger xlog.Logger) Option {
	return func(o *initOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSink 覆盖 span 的发布端。设置后不再构建 OTLP 导出器，
// 主要供测试与自定义转发场景使用。
func WithSink(sink xspan.Sink) Option {
	return func(o *initOptions) {
		if sink != nil {
			o.sink = sink
		}
	}
}

// WithMeter 启用聚合计数到 OTel 指标的镜像。
func WithMeter(meter metric.Meter) Option {
	return func(o *initOptions) {
		if meter != nil {
			o.meter = meter
		}
	}
}

// WithRecentSpans 保留最近 capacity 条 span 记录供运行时调试查询
//（[Runtime.RecentRecords]）。capacity <= 0 时禁用（默认）。
func WithRecentSpans(capacity int) Option {
	return func(o *initOptions) {
		o.recentCapacity = capacity
	}
}
