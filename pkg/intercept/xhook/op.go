package xhook

import (
	"context"
	"sync"
	"time"
)

// Op 是可被拦截的宿主操作。
//
// 设计决策: 统一为 (ctx, 变长参数) -> (结果, 错误) 的签名。宿主在
// 接入点做一次签名适配后，包装层无须反射即可保证"返回值与错误
// 原样传播"；类型保真由适配层两侧的静态代码保证。
type Op func(ctx context.Context, args ...any) (any, error)

// Host 是宿主暴露的能力探测与替换接口。
//
// 这是一个显式扩展点：核心从不改写宿主符号，只通过 Lookup 探测
// 能力、通过 Replace 安装包装版本。
type Host interface {
	// Lookup 返回命名操作；不存在时返回 (nil, false)。
	Lookup(target string) (Op, bool)

	// Replace 用 op 替换命名操作。
	Replace(target string, op Op) error
}

// Invocation 是一次被拦截调用的上下文，贯穿 Before/Around/Finally。
//
// 每次调用独占一个 Invocation，不跨 goroutine 共享；
// 钩子可通过 Set/Value 在阶段之间传递状态（如起始资源采样）。
type Invocation struct {
	// Target 被拦截操作的标识。
	Target string
	// Args 调用参数。
	Args []any
	// Start 包装器开始执行的时间。
	Start time.Time
	// Result 原操作的返回值（Finally 阶段可读；panic 场景为零值）。
	Result any
	// Err 原操作返回的错误（Finally 阶段可读）。
	Err error
	// Recovered 原操作 panic 时的 panic 值，Finally 之后原样重抛。
	Recovered any

	values map[string]any
}

// Set 存入钩子间共享的状态值。
func (inv *Invocation) Set(key string, value any) {
	if inv.values == nil {
		inv.values = make(map[string]any)
	}
	inv.values[key] = value
}

// Value 读取钩子间共享的状态值。
func (inv *Invocation) Value(key string) (any, bool) {
	value, ok := inv.values[key]
	return value, ok
}

// Failed 判断本次调用是否失败（错误返回或 panic）。
func (inv *Invocation) Failed() bool {
	return inv.Err != nil || inv.Recovered != nil
}

// MapHost 是基于映射的 Host 参考实现，供测试与进程内嵌入场景使用。
// 并发安全。
type MapHost struct {
	mu  sync.RWMutex
	ops map[string]Op
}

// 编译时接口检查
var _ Host = (*MapHost)(nil)

// NewMapHost 创建空的 MapHost。
func NewMapHost() *MapHost {
	return &MapHost{ops: make(map[string]Op)}
}

// Set 注册（或覆盖）一个命名操作。
func (h *MapHost) Set(target string, op Op) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ops[target] = op
}

// Lookup 返回命名操作。
func (h *MapHost) Lookup(target string) (Op, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	op, ok := h.ops[target]
	return op, ok
}

// Replace 替换已存在的命名操作，不存在时返回 [ErrUnknownTarget]。
func (h *MapHost) Replace(target string, op Op) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.ops[target]; !ok {
		return ErrUnknownTarget
	}
	h.ops[target] = op
	return nil
}

// Call 以当前注册的版本调用命名操作，模拟宿主的调用路径。
func (h *MapHost) Call(ctx context.Context, target string, args ...any) (any, error) {
	op, ok := h.Lookup(target)
	if !ok {
		return nil, ErrUnknownTarget
	}
	return op(ctx, args...)
}
