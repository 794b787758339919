package xlog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Level 日志级别，与 slog.Level 同构。
type Level slog.Level

// 支持的日志级别。
const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// ErrInvalidLevel 表示无法识别的级别字符串。
var ErrInvalidLevel = errors.New("xlog: invalid level")

// ParseLevel 解析级别字符串（大小写不敏感，允许前后空白）。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

// String 返回级别的可读表示。
func (l Level) String() string {
	return slog.Level(l).String()
}
