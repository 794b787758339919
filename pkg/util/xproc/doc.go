// Package xproc 提供进程标识与进程/系统资源采样。
//
// # 资源采样
//
// [Sampler.Sample] 基于 gopsutil 采集进程 RSS/VMS、系统可用内存与
// 使用率、进程 CPU 使用率。每个部分带独立的存在性标记：某项 OS
// 查询失败只把该部分标记为缺失，Sample 永不返回错误、永不 panic——
// 资源采样是尽力而为的观测行为，不允许反向影响宿主操作。
//
// # 进程标识
//
// [ProcessID] 与 [ProcessName] 提供日志字段、指标标签所需的进程标识，
// ProcessName 首次解析后缓存。
package xproc
