package xhook

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/omeyang/tracekit/pkg/observability/xlog"
)

// HookSet 是挂接到单个 target 上的钩子集合。任意字段可为 nil。
type HookSet struct {
	// Before 在原操作执行前调用，通常做起始采样并在 Invocation 上留痕。
	// panic 被捕获并吞掉（Warn 日志），不影响宿主操作。
	Before func(ctx context.Context, inv *Invocation)

	// Around 负责调用原操作（恰好一次），并原样传播其结果与错误，
	// 除非显式覆盖。为 nil 时包装器直接调用原操作。
	Around func(ctx context.Context, original Op, inv *Invocation) (any, error)

	// Finally 在原操作结束后必然执行（含错误与 panic 场景），
	// 通常做结束采样、关闭 span、更新计数。panic 被捕获并吞掉。
	Finally func(ctx context.Context, inv *Invocation)
}

// record 是单个 target 的拦截记录。applied 一旦置位即为终态，
// 进程存续期间不销毁（包装是永久的）。
type record struct {
	target   string
	original Op
	applied  bool
}

// Registry 拦截注册表。
//
// Register 的检查-置位在互斥锁内完成，并发注册同一 target
//（如重入的初始化代码）至多一次成功。
type Registry struct {
	host   Host
	logger xlog.Logger

	mu      sync.Mutex
	records map[string]*record
}

// Option 配置 Registry 的选项函数。
type Option func(*Registry)

// WithLogger 设置注册表的日志输出。默认丢弃。
func WithLogger(logger xlog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry 创建注册表。host 为 nil 返回 [ErrNilHost]。
func NewRegistry(host Host, opts ...Option) (*Registry, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	r := &Registry{
		host:    host,
		logger:  xlog.Discard(),
		records: make(map[string]*record),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Register 把 target 替换为带钩子的包装版本。
//
// 返回 applied：
//   - (true, nil)  首次成功包装
//   - (false, nil) target 已应用过（幂等跳过）或宿主上不存在该能力，
//     两者都不是错误，分别记 Debug 日志
//   - (false, err) target 为空，或宿主拒绝替换
func (r *Registry) Register(target string, hooks HookSet) (bool, error) {
	if target == "" {
		return false, ErrEmptyTarget
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.records[target]; ok && rec.applied {
		r.logger.Debug(context.Background(), "target already instrumented, skipping",
			slog.String("target", target))
		return false, nil
	}

	original, ok := r.host.Lookup(target)
	if !ok || original == nil {
		r.logger.Debug(context.Background(), "target capability absent, skipping",
			slog.String("target", target))
		return false, nil
	}

	if err := r.host.Replace(target, r.wrap(target, original, hooks)); err != nil {
		return false, fmt.Errorf("%w: %s: %w", ErrReplaceFailed, target, err)
	}

	r.records[target] = &record{target: target, original: original, applied: true}
	r.logger.Info(context.Background(), "target instrumented",
		slog.String("target", target))
	return true, nil
}

// Applied 判断 target 是否已被包装。
func (r *Registry) Applied(target string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[target]
	return ok && rec.applied
}

// Targets 返回已应用的 target 列表（字典序）。
func (r *Registry) Targets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	targets := make([]string, 0, len(r.records))
	for target, rec := range r.records {
		if rec.applied {
			targets = append(targets, target)
		}
	}
	sort.Strings(targets)
	return targets
}

// wrap 生成 target 的包装操作。
//
// 透明性契约：包装版本的返回值、错误与 panic 与原操作完全一致，
// 钩子只能附加副作用。
func (r *Registry) wrap(target string, original Op, hooks HookSet) Op {
	return func(ctx context.Context, args ...any) (result any, err error) {
		inv := &Invocation{
			Target: target,
			Args:   args,
			Start:  time.Now(),
		}

		r.runHook(ctx, target, "before", hooks.Before, inv)

		// Finally 的保障释放语义：原操作 panic 时先记录 panic 值、
		// 执行 Finally，再原样重抛。
		defer func() {
			if rec := recover(); rec != nil {
				inv.Recovered = rec
				r.runHook(ctx, target, "finally", hooks.Finally, inv)
				panic(rec)
			}
			r.runHook(ctx, target, "finally", hooks.Finally, inv)
		}()

		if hooks.Around != nil {
			result, err = hooks.Around(ctx, original, inv)
		} else {
			result, err = original(ctx, args...)
		}
		inv.Result = result
		inv.Err = err
		return result, err
	}
}

// runHook 执行单个观测钩子，panic 被捕获、记 Warn 后吞掉。
// 可观测性永不破坏宿主的主操作。
func (r *Registry) runHook(ctx context.Context, target, phase string, hook func(context.Context, *Invocation), inv *Invocation) {
	if hook == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn(ctx, "observability hook failed, suppressed",
				slog.String("target", target),
				slog.String("phase", phase),
				slog.Any("panic", rec),
			)
		}
	}()
	hook(ctx, inv)
}
