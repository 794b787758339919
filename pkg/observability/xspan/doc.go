// Package xspan 提供单次操作的追踪跨度（Span）与上报通道（Sink）。
//
// # 设计理念
//
// 一个 Span 对应一次被拦截的宿主操作：操作名、资源标签、标签映射、
// 数值指标映射、起止时间与最终状态。Span 由执行该操作的 goroutine
// 独占，不在执行上下文之间共享；并发进行的多个 Span 彼此独立。
//
// Span 关闭时生成不可变的 [Record] 并恰好一次交给 [Sink]，
// 包括操作失败的场景。关闭后的任何修改返回 [ErrSpanClosed]。
//
// # Sink 实现
//
//   - [MemorySink]: 按序追加到内存切片，用于测试
//   - [NoopSink]: 丢弃所有记录
//   - [OTelSink]: 以显式时间戳重放为 OpenTelemetry span，交给外部导出通道
//   - [RecentSink]: 有界 LRU 缓存最近记录，用于诊断，可级联下游 Sink
//
// 重试、批量与背压属于外部导出通道的职责，任何 Sink 都不做这些事。
//
// # 使用示例
//
//	span := xspan.Open("node.execute", "KSampler#3", sink)
//	_ = span.SetTag("prompt.id", promptID)
//	// ... 执行操作 ...
//	_ = span.SetMetric("duration_seconds", elapsed.Seconds())
//	_ = span.Close(xspan.StatusSuccess, nil)
package xspan
