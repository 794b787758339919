package xspan

import "errors"

var (
	// ErrSpanClosed 表示在 Span 关闭后调用了修改方法或再次关闭。
	// 这是调用方的契约违规（InvalidState），不会影响宿主操作本身。
	ErrSpanClosed = errors.New("xspan: span already closed")

	// ErrEmptyKey 表示标签或指标的 key 为空字符串。
	ErrEmptyKey = errors.New("xspan: empty key")

	// ErrInvalidCapacity 表示 RecentSink 的容量参数无效（必须为正数）。
	ErrInvalidCapacity = errors.New("xspan: capacity must be positive")
)
