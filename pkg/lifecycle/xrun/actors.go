package xrun

import (
	"context"
	"time"
)

// Ticker 返回周期性执行任务的服务函数。
//
// interval 必须为正数，否则返回的服务函数返回 [ErrInvalidInterval]。
// immediate 为 true 时在启动时立即执行一次。ctx 被取消时返回 ctx.Err()。
//
// 示例：
//
//	g.Go(xrun.Ticker(time.Minute, false, func(ctx context.Context) error {
//	    return flushStats(ctx)
//	}))
func Ticker(interval time.Duration, immediate bool, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		if fn == nil {
			return ErrNilFunc
		}

		// 已取消的 context 不触发业务副作用
		if immediate {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := fn(ctx); err != nil {
				return err
			}
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := fn(ctx); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// WaitForDone 返回等待 context 取消的占位服务函数，
// 用于保持 Group 运行直到收到取消。
func WaitForDone() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
}
