// Package xapm 把 tracekit 的各部分装配为可直接嵌入宿主的追踪运行时。
//
// # 使用方式
//
//	rt, err := xapm.Init(ctx)
//	if err != nil {
//	    // 配置错误在启动时暴露；宿主可选择忽略并继续裸跑
//	}
//	applied, err := rt.Instrument(host,
//	    xapm.TargetSpec{Target: "executor.execute", SpanName: "workflow.execute"},
//	)
//	defer rt.Shutdown(context.Background())
//
// # 降级语义
//
// 追踪后端不可用（导出器构建失败或 trace_enabled=false）时，Init
// 记一条 Warn 后返回禁用态的 Runtime：拦截照常、聚合计数与统计
// 日志照常，只是不再产生 span。宿主启动永不因观测层失败而中止。
//
// # 钩子行为
//
// 每次被拦截的调用：Before 阶段做起始资源采样并按采样决策打开
// span；Finally 阶段更新聚合计数、补全资源增量指标并关闭 span。
// 操作 panic 时 span 以 error 终态关闭、panic 原样重抛。
// 采样跳过的调用不产生 span，但计数照常累计。
package xapm
