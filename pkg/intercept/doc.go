// Package intercept 提供宿主操作拦截相关的子包。
//
// 子包列表：
//   - xhook: 能力探测与替换式的操作拦截注册表
//
// 设计原则：
//   - 拦截通过宿主显式暴露的 Lookup/Replace 扩展点完成，不做符号改写
//   - 可观测性失败永不影响宿主操作的返回值与错误
package intercept
