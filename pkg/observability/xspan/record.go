package xspan

import "time"

// Status 表示 Span 的生命周期状态。
type Status string

const (
	// StatusPending 表示 Span 已打开但尚未关闭。
	StatusPending Status = "pending"
	// StatusSuccess 表示操作成功完成。
	StatusSuccess Status = "success"
	// StatusError 表示操作失败。
	StatusError Status = "error"
)

// IsTerminal 判断状态是否为终态（success 或 error）。
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusError
}

// Record 是 Span 关闭后生成的不可变记录。
//
// 设计决策: Record 持有标签/指标映射的独立副本，生成后不再与 Span 共享
// 任何可变状态。Sink 可以在任意 goroutine 中持有或转发 Record，
// 无需与打开 Span 的执行上下文同步。
type Record struct {
	// SpanID 记录的唯一标识。
	SpanID string
	// Name 操作名称（如 "node.execute"）。
	Name string
	// Resource 资源标签（如 "KSampler#3"）。
	Resource string
	// Tags 标签映射，值为标量。
	Tags map[string]any
	// Metrics 数值指标映射。
	Metrics map[string]float64
	// Start 操作开始时间。
	Start time.Time
	// End 操作结束时间，关闭后满足 End >= Start。
	End time.Time
	// Status 终态（success 或 error）。
	Status Status
	// ErrorKind 错误类型（仅 StatusError 且有错误对象时填充）。
	ErrorKind string
	// ErrorMessage 错误消息（仅 StatusError 且有错误对象时填充）。
	ErrorMessage string
}

// Duration 返回操作耗时。
func (r Record) Duration() time.Duration {
	return r.End.Sub(r.Start)
}
