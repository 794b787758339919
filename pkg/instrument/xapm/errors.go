package xapm

import (
	"errors"
	"fmt"
)

var (
	// ErrRuntimeClosed 表示 Runtime 已经 Shutdown。
	ErrRuntimeClosed = errors.New("xapm: runtime already shut down")

	// ErrNilHost 表示 Instrument 的宿主为 nil。
	ErrNilHost = errors.New("xapm: host cannot be nil")
)

// PanicError 包装被拦截操作抛出的 panic 值，作为 span 的关闭错误。
// panic 值本身仍会原样重抛给宿主。
type PanicError struct {
	// Value 原始的 panic 值。
	Value any
}

// Error 实现 error 接口。
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
