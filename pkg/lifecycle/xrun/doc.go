// Package xrun 提供后台服务的并发运行与协调关闭。
//
// # 设计理念
//
// [Group] 基于 errgroup + context：任一服务出错或 context 被取消时，
// 组内所有服务都会收到取消信号。[Ticker] 把周期性任务适配为服务函数。
//
// tracekit 作为宿主进程内的观测层运行，生命周期由宿主驱动，
// 因此本包刻意不注册任何系统信号监听——宿主退出时取消传入的
// context 即可触发协调关闭。
//
// # 并发安全
//
// Go、GoWithName、Cancel 可从多个 goroutine 并发调用；Wait 只应调用一次。
package xrun
