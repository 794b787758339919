// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xproc: 进程标识与进程/系统资源采样
//   - xaccel: 加速设备内存指标的能力接入点
//
// 设计原则：
//   - 资源探测尽力而为，失败以缺失标记表达而非错误
//   - 跨平台兼容
package util
