package xlog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrEmptyFilename 表示轮转文件名为空。
var ErrEmptyFilename = errors.New("xlog: rotation filename cannot be empty")

// RotateOption 配置日志轮转参数的选项函数。
type RotateOption func(*lumberjack.Logger)

// WithMaxSizeMB 设置单个日志文件的最大体积（MB），默认 100。
func WithMaxSizeMB(size int) RotateOption {
	return func(l *lumberjack.Logger) {
		if size > 0 {
			l.MaxSize = size
		}
	}
}

// WithMaxBackups 设置保留的旧文件数量，默认 3。
func WithMaxBackups(n int) RotateOption {
	return func(l *lumberjack.Logger) {
		if n >= 0 {
			l.MaxBackups = n
		}
	}
}

// WithMaxAgeDays 设置旧文件保留天数，默认 28。
func WithMaxAgeDays(days int) RotateOption {
	return func(l *lumberjack.Logger) {
		if days >= 0 {
			l.MaxAge = days
		}
	}
}

// WithCompress 设置是否压缩轮转出的旧文件。
func WithCompress(enabled bool) RotateOption {
	return func(l *lumberjack.Logger) {
		l.Compress = enabled
	}
}

// Builder 日志配置构建器。
type Builder struct {
	output    io.Writer
	levelVar  *slog.LevelVar
	format    string
	addSource bool
	enrich    bool
	rotator   *lumberjack.Logger
	err       error
}

// New 创建配置构建器。默认输出 os.Stderr、text 格式、Info 级别、
// 启用 OTel 追踪上下文注入。
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)
	return &Builder{
		output:   os.Stderr,
		levelVar: levelVar,
		format:   "text",
		enrich:   true,
	}
}

// SetOutput 设置日志输出目标。
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if w != nil {
		b.output = w
	}
	return b
}

// SetLevel 设置日志级别。
func (b *Builder) SetLevel(level Level) *Builder {
	b.levelVar.Set(slog.Level(level))
	return b
}

// SetLevelString 通过字符串设置日志级别。
func (b *Builder) SetLevelString(s string) *Builder {
	level, err := ParseLevel(s)
	if err != nil {
		b.err = err
		return b
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json。空值视为默认 text。
func (b *Builder) SetFormat(format string) *Builder {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == "" {
		b.format = "text"
		return b
	}
	if normalized != "text" && normalized != "json" {
		b.err = fmt.Errorf("xlog: unknown format %q", format)
		return b
	}
	b.format = normalized
	return b
}

// SetAddSource 是否在日志中添加源码位置。
func (b *Builder) SetAddSource(enable bool) *Builder {
	b.addSource = enable
	return b
}

// SetEnrich 是否自动注入 OTel 追踪上下文（trace_id/span_id）。默认启用。
func (b *Builder) SetEnrich(enable bool) *Builder {
	b.enrich = enable
	return b
}

// SetRotation 设置日志轮转输出。
func (b *Builder) SetRotation(filename string, opts ...RotateOption) *Builder {
	if filename == "" {
		b.err = ErrEmptyFilename
		return b
	}
	rotator := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(rotator)
	}
	b.rotator = rotator
	b.output = rotator
	return b
}

// Build 构建 Logger。
//
// 返回的 cleanup 负责关闭轮转文件句柄；未配置轮转时为空操作，
// 总是非 nil，调用方可以无条件 defer。
func (b *Builder) Build() (LoggerWithLevel, func(), error) {
	if b.err != nil {
		return nil, nil, b.err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     b.levelVar,
		AddSource: b.addSource,
	}

	var handler slog.Handler
	if b.format == "json" {
		handler = slog.NewJSONHandler(b.output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(b.output, handlerOpts)
	}
	if b.enrich {
		handler = newEnrichHandler(handler)
	}

	cleanup := func() {}
	if b.rotator != nil {
		rotator := b.rotator
		cleanup = func() { _ = rotator.Close() }
	}

	return &xlogger{handler: handler, levelVar: b.levelVar}, cleanup, nil
}
