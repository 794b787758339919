// Package instrument 提供追踪运行时相关的子包。
//
// 子包列表：
//   - xapm: 运行时装配——配置加载、OTLP 导出、拦截钩子、统计上报
package instrument
