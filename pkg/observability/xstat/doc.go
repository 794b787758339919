// Package xstat 提供进程级操作计数器与周期性统计上报。
//
// # 设计理念
//
// [Counters] 是进程生命周期内的单例聚合状态：执行次数、失败次数与
// 累计耗时，全部基于原子操作，可被任意数量的并发包装器安全更新，
// 进程存续期间只增不减、从不重置。
//
// 累计耗时以原子 int64 纳秒存储而非浮点累加，并发更新不会丢失
//（严格守恒：N 次调用中 F 次失败，快照恰好为 executed=N、failed=F）。
//
// [Reporter] 在后台按固定间隔（默认 60s）或 cron 表达式读取快照并
// 输出一条统计日志；仅当 executed > 0 时输出。休眠期间不持有任何锁，
// context 取消后在一个周期内退出。
//
// 可选地，计数器变更会镜像到 OpenTelemetry 指标
//（tracekit.operation.total / tracekit.operation.failed /
// tracekit.operation.duration）。
package xstat
