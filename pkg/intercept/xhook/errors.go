package xhook

import "errors"

var (
	// ErrNilHost 表示创建注册表时未提供宿主。
	ErrNilHost = errors.New("xhook: host cannot be nil")

	// ErrEmptyTarget 表示 target 标识为空字符串。
	ErrEmptyTarget = errors.New("xhook: target cannot be empty")

	// ErrReplaceFailed 表示宿主拒绝了操作替换。
	ErrReplaceFailed = errors.New("xhook: host replace failed")

	// ErrUnknownTarget 表示 MapHost 中不存在该操作。
	ErrUnknownTarget = errors.New("xhook: unknown target")
)
