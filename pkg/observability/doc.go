// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展
//   - xspan: 手动 span 生命周期与发布端（Sink）
//   - xstat: 聚合执行计数与周期统计上报
//   - xsampling: 采样策略
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - 观测失败永不影响被观测操作的控制流
//   - 自动从 context 中提取追踪信息注入日志
package observability
