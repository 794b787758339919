package xstat

import "errors"

var (
	// ErrNilCounters 表示 Reporter 缺少计数器。
	ErrNilCounters = errors.New("xstat: counters cannot be nil")

	// ErrInvalidInterval 表示上报间隔无效（必须为正数）。
	ErrInvalidInterval = errors.New("xstat: interval must be positive")

	// ErrInvalidSchedule 表示 cron 表达式无法解析。
	ErrInvalidSchedule = errors.New("xstat: invalid cron schedule")

	// ErrCreateInstrument 表示创建 OTel 指标失败。
	ErrCreateInstrument = errors.New("xstat: create otel instrument failed")
)
