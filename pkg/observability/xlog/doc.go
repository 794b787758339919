// Package xlog 提供基于 log/slog 的结构化日志。
//
// # 设计理念
//
//   - 强制 context 传递，日志自动携带当前 OTel 追踪上下文（trace_id/span_id）
//   - 方法签名只接受 slog.Attr，类型安全，避免隐式 key-value 转换
//   - 动态级别控制（slog.LevelVar），运行时可调
//   - Build() 返回 cleanup 函数，负责关闭轮转文件句柄
//
// # 使用示例
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("info").
//		SetFormat("json").
//		Build()
//	if err != nil {
//		// ...
//	}
//	defer cleanup()
//	logger.Info(ctx, "instrumented", slog.String("target", "node.execute"))
package xlog
