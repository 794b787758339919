package xapm

import (
	"context"
	"time"

	"github.com/omeyang/tracekit/pkg/intercept/xhook"
	"github.com/omeyang/tracekit/pkg/observability/xspan"
	"github.com/omeyang/tracekit/pkg/util/xaccel"
	"github.com/omeyang/tracekit/pkg/util/xproc"
)

// TargetSpec 描述一个要拦截的宿主操作。
type TargetSpec struct {
	// Target 宿主操作的标识（[xhook.Host] 的 Lookup/Replace 键）。
	Target string

	// SpanName span 的操作名，为空时使用 Target。
	SpanName string

	// Resource span 的资源名（如工作流类型），为空时使用 Target。
	Resource string
}

// Invocation 状态键。
const (
	invKeySpan   = "xapm.span"
	invKeySample = "xapm.sample"
)

// targetCtxKey 在采样决策的 context 中携带 target 标识。
type targetCtxKey struct{}

func withTarget(ctx context.Context, target string) context.Context {
	return context.WithValue(ctx, targetCtxKey{}, target)
}

func targetFromContext(ctx context.Context) string {
	target, _ := ctx.Value(targetCtxKey{}).(string)
	return target
}

// Instrument 把 specs 描述的宿主操作替换为带追踪钩子的包装版本，
// 返回本次新应用的数量。
//
// 宿主上不存在的 target 被跳过（不计数、不报错）；同一 Runtime 对
// 同一宿主重复 Instrument 是幂等的。host 必须可比较（指针实现天然满足）。
func (rt *Runtime) Instrument(host xhook.Host, specs ...TargetSpec) (int, error) {
	if host == nil {
		return 0, ErrNilHost
	}

	reg, err := rt.registryFor(host)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, spec := range specs {
		ok, err := reg.Register(spec.Target, rt.TraceHooks(spec))
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
		}
	}
	return applied, nil
}

// registryFor 返回宿主对应的注册表，同一宿主复用同一张表以保证幂等。
func (rt *Runtime) registryFor(host xhook.Host) (*xhook.Registry, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.closed {
		return nil, ErrRuntimeClosed
	}
	if reg, ok := rt.registries[host]; ok {
		return reg, nil
	}
	reg, err := xhook.NewRegistry(host, xhook.WithLogger(rt.logger))
	if err != nil {
		return nil, err
	}
	rt.registries[host] = reg
	return reg, nil
}

// TraceHooks 生成 spec 对应的追踪钩子集合。
//
// Before: 起始资源采样；按采样决策打开 span。
// Finally: 聚合计数；结束资源采样、补全增量指标；关闭 span。
// 钩子自身的失败由注册表遏制，永不影响宿主操作。
func (rt *Runtime) TraceHooks(spec TargetSpec) xhook.HookSet {
	name := spec.SpanName
	if name == "" {
		name = spec.Target
	}
	resourceName := spec.Resource
	if resourceName == "" {
		resourceName = spec.Target
	}

	return xhook.HookSet{
		Before: func(ctx context.Context, inv *xhook.Invocation) {
			inv.Set(invKeySample, rt.procSampler.Sample(ctx))

			if !rt.sampler.ShouldSample(withTarget(ctx, spec.Target)) {
				return
			}
			span := xspan.Open(name, resourceName, rt.sink)
			_ = span.SetTag("target", spec.Target)
			if procName := xproc.ProcessName(); procName != "" {
				_ = span.SetTag("process.name", procName)
			}
			inv.Set(invKeySpan, span)
		},

		Finally: func(ctx context.Context, inv *xhook.Invocation) {
			elapsed := time.Since(inv.Start)

			rt.counters.IncrExecuted()
			if inv.Failed() {
				rt.counters.IncrFailed()
			}
			rt.counters.AddDuration(elapsed)

			v, ok := inv.Value(invKeySpan)
			if !ok {
				return
			}
			span := v.(*xspan.Span)

			metrics := map[string]float64{
				"duration.seconds": elapsed.Seconds(),
			}
			before, _ := sampleFromInvocation(inv)
			after := rt.procSampler.Sample(ctx)
			addMemoryMetrics(metrics, before, after)
			addAccelMetrics(metrics, span)

			_ = span.SetMetrics(metrics)

			if inv.Recovered != nil {
				_ = span.Close(xspan.StatusError, &PanicError{Value: inv.Recovered})
				return
			}
			_ = span.Close(xspan.StatusPending, inv.Err)
		},
	}
}

// sampleFromInvocation 取出 Before 阶段存下的起始资源采样。
func sampleFromInvocation(inv *xhook.Invocation) (xproc.Sample, bool) {
	v, ok := inv.Value(invKeySample)
	if !ok {
		return xproc.Sample{}, false
	}
	sample, ok := v.(xproc.Sample)
	return sample, ok
}

// addMemoryMetrics 按前后两次采样补全内存与 CPU 指标。
// 缺失的部分直接跳过，不产生对应指标键。
func addMemoryMetrics(metrics map[string]float64, before, after xproc.Sample) {
	if before.HasProcess {
		metrics["mem.rss.before.mb"] = toMB(before.RSS)
		metrics["mem.vms.before.mb"] = toMB(before.VMS)
	}
	if after.HasProcess {
		metrics["mem.rss.after.mb"] = toMB(after.RSS)
		metrics["mem.vms.after.mb"] = toMB(after.VMS)
	}
	if before.HasProcess && after.HasProcess {
		metrics["mem.rss.delta.mb"] = toMB(after.RSS) - toMB(before.RSS)
		metrics["mem.vms.delta.mb"] = toMB(after.VMS) - toMB(before.VMS)
	}

	if before.HasSystem {
		metrics["sys.available.before.mb"] = toMB(before.SystemAvailable)
		metrics["sys.used.percent.before"] = before.SystemUsedPercent
	}
	if after.HasSystem {
		metrics["sys.available.after.mb"] = toMB(after.SystemAvailable)
		metrics["sys.used.percent.after"] = after.SystemUsedPercent
	}
	if before.HasSystem && after.HasSystem {
		metrics["sys.available.delta.mb"] = toMB(after.SystemAvailable) - toMB(before.SystemAvailable)
	}

	if after.HasCPU {
		metrics["cpu.percent"] = after.CPUPercent
	}
}

// addAccelMetrics 探测加速设备内存；设备缺失是正常结局。
func addAccelMetrics(metrics map[string]float64, span *xspan.Span) {
	accel, ok := xaccel.Probe()
	if !ok {
		return
	}
	metrics["accel.allocated.mb"] = toMB(accel.Allocated)
	metrics["accel.reserved.mb"] = toMB(accel.Reserved)
	if accel.DeviceName != "" {
		_ = span.SetTag("accel.device", accel.DeviceName)
	}
}

// toMB 把字节数转换为 MB（浮点）。
func toMB(bytes uint64) float64 {
	return float64(bytes) / (1 << 20)
}
