// Package xconf 提供追踪运行时的配置加载，基于 koanf 实现。
//
// # 设计理念
//
// xconf 定位为一次性配置加载器：进程启动时从可选的配置文件
// （YAML/JSON）加载 [Settings]，再应用 TRACEKIT_* 环境变量覆盖，
// 之后配置冻结——运行期修改环境变量不会生效。不提供热重载。
//
// # 加载优先级
//
// 环境变量 > 配置文件 > 内置默认值。
//
// 支持的环境变量：
//
//	TRACEKIT_SERVICE         服务名
//	TRACEKIT_ENVIRONMENT     部署环境（prod/staging/dev...）
//	TRACEKIT_VERSION         服务版本
//	TRACEKIT_AGENT_ENDPOINT  OTLP gRPC 采集端地址
//	TRACEKIT_TRACE_ENABLED   是否启用追踪上报（true/false）
//	TRACEKIT_SAMPLE_RATE     采样率 [0.0, 1.0]
//	TRACEKIT_STATS_INTERVAL  统计日志间隔（Go duration，如 60s）
//	TRACEKIT_STATS_SCHEDULE  统计日志 cron 表达式（优先于间隔）
//	TRACEKIT_LOG_LEVEL       日志级别（debug/info/warn/error）
//	TRACEKIT_LOG_FORMAT      日志格式（text/json）
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
package xconf
