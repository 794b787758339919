package xconf

import (
	"math"
	"time"
)

// 默认值。
const (
	// DefaultService 默认服务名。
	DefaultService = "tracekit"

	// DefaultAgentEndpoint 默认的 OTLP gRPC 采集端地址。
	DefaultAgentEndpoint = "localhost:4317"

	// DefaultSampleRate 默认采样率（全采样）。
	DefaultSampleRate = 1.0

	// DefaultStatsInterval 默认统计日志间隔。
	DefaultStatsInterval = 60 * time.Second

	// DefaultLogLevel 默认日志级别。
	DefaultLogLevel = "info"

	// DefaultLogFormat 默认日志格式。
	DefaultLogFormat = "text"
)

// Settings 追踪运行时的完整配置。
//
// 进程启动时加载一次即冻结；各字段的含义与环境变量对应关系
// 见包文档。
type Settings struct {
	// Service 服务名，作为导出 span 的 service 资源属性。
	Service string `koanf:"service"`

	// Environment 部署环境（prod/staging/dev...），可为空。
	Environment string `koanf:"environment"`

	// Version 服务版本，可为空。
	Version string `koanf:"version"`

	// AgentEndpoint OTLP gRPC 采集端地址（host:port）。
	AgentEndpoint string `koanf:"agent_endpoint"`

	// TraceEnabled 是否启用追踪上报。为 false 时插桩保留但
	// 不产生 span，聚合计数不受影响。
	TraceEnabled bool `koanf:"trace_enabled"`

	// SampleRate 采样率，范围 [0.0, 1.0]。
	SampleRate float64 `koanf:"sample_rate"`

	// StatsInterval 统计日志的固定间隔。
	StatsInterval time.Duration `koanf:"stats_interval"`

	// StatsSchedule 统计日志的 cron 表达式，非空时优先于 StatsInterval。
	StatsSchedule string `koanf:"stats_schedule"`

	// LogLevel 日志级别（debug/info/warn/error）。
	LogLevel string `koanf:"log_level"`

	// LogFormat 日志格式（text/json）。
	LogFormat string `koanf:"log_format"`
}

// DefaultSettings 返回带内置默认值的配置。
func DefaultSettings() Settings {
	return Settings{
		Service:       DefaultService,
		AgentEndpoint: DefaultAgentEndpoint,
		TraceEnabled:  true,
		SampleRate:    DefaultSampleRate,
		StatsInterval: DefaultStatsInterval,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
}

// Validate 校验配置的合法性。
func (s *Settings) Validate() error {
	if math.IsNaN(s.SampleRate) || s.SampleRate < 0 || s.SampleRate > 1 {
		return ErrInvalidSampleRate
	}
	if s.StatsInterval <= 0 {
		return ErrInvalidStatsInterval
	}
	return nil
}
