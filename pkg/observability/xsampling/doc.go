// Package xsampling 提供追踪采样策略。
//
// # 核心接口
//
// [Sampler] 是采样决策的统一接口，ShouldSample(ctx) 返回本次事件
// 是否应被采样上报。
//
// # 策略
//
//   - Always(): 全采样（调试、低流量环境）
//   - Never(): 关闭采样（等价于禁用上报）
//   - NewRateSampler(rate): 固定比率随机采样
//   - NewKeyBasedSampler(rate, keyFunc): 基于 key 的一致性采样
//
// # 一致性采样
//
// KeyBasedSampler 使用 xxhash（github.com/cespare/xxhash/v2）做确定性
// 哈希：同一 key（如工作流 ID）在所有进程中产生相同的采样决策，
// 同一条执行链路的所有 span 要么全部上报、要么全部丢弃。
//
// # 并发安全
//
// 所有采样器均为并发安全，可在多个 goroutine 中共享。
package xsampling
