package xconf

import "errors"

var (
	// ErrEmptyPath 表示配置文件路径为空。
	ErrEmptyPath = errors.New("xconf: config path cannot be empty")

	// ErrUnsupportedFormat 表示配置格式不受支持。
	ErrUnsupportedFormat = errors.New("xconf: unsupported config format")

	// ErrLoadFailed 表示配置文件读取失败。
	ErrLoadFailed = errors.New("xconf: failed to load config")

	// ErrParseFailed 表示配置数据解析失败。
	ErrParseFailed = errors.New("xconf: failed to parse config")

	// ErrUnmarshalFailed 表示配置反序列化失败。
	ErrUnmarshalFailed = errors.New("xconf: failed to unmarshal config")

	// ErrInvalidSampleRate 表示采样率不在 [0.0, 1.0] 范围内。
	ErrInvalidSampleRate = errors.New("xconf: sample_rate must be in [0.0, 1.0]")

	// ErrInvalidStatsInterval 表示统计间隔非正。
	ErrInvalidStatsInterval = errors.New("xconf: stats_interval must be positive")
)
