package xproc

import (
	"context"
	"sync"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// gopsutil 调用的包级变量，支持测试中 mock 采样失败路径。
var (
	newProcess    = process.NewProcessWithContext
	virtualMemory = mem.VirtualMemoryWithContext
)

// Sample 一次进程/系统资源采样的结果。
//
// 每个部分带独立的存在性标记：标记为 false 时该部分的数值无意义。
// 采样失败不是错误，调用方据标记决定是否使用对应指标。
type Sample struct {
	// RSS 进程常驻内存（字节）。
	RSS uint64
	// VMS 进程虚拟内存（字节）。
	VMS uint64
	// HasProcess 进程内存部分是否采样成功。
	HasProcess bool

	// SystemAvailable 系统可用内存（字节）。
	SystemAvailable uint64
	// SystemUsedPercent 系统内存使用率（0-100）。
	SystemUsedPercent float64
	// HasSystem 系统内存部分是否采样成功。
	HasSystem bool

	// CPUPercent 进程 CPU 使用率（0-100*核数），自上次采样以来。
	CPUPercent float64
	// HasCPU CPU 部分是否采样成功。
	HasCPU bool
}

// Sampler 进程/系统资源采样器。并发安全。
//
// 进程句柄在首次采样时惰性解析并复用；CPU 使用率基于上次采样
// 以来的增量计算，首次采样通常为 0。
type Sampler struct {
	mu   sync.Mutex
	proc *process.Process
	pid  int32
}

// NewSampler 创建针对当前进程的采样器。
func NewSampler() *Sampler {
	return &Sampler{pid: int32(ProcessID())}
}

// Sample 采集一次进程与系统资源快照。
//
// 任何一项 OS 查询失败只把对应部分标记为缺失，永不返回错误、
// 永不 panic。
func (s *Sampler) Sample(ctx context.Context) Sample {
	var sample Sample

	if proc := s.handle(ctx); proc != nil {
		if info, err := proc.MemoryInfoWithContext(ctx); err == nil && info != nil {
			sample.RSS = info.RSS
			sample.VMS = info.VMS
			sample.HasProcess = true
		}
		// interval=0: 基于上次调用以来的 CPU 时间增量，不阻塞采样热路径
		if percent, err := proc.PercentWithContext(ctx, 0); err == nil {
			sample.CPUPercent = percent
			sample.HasCPU = true
		}
	}

	if vm, err := virtualMemory(ctx); err == nil && vm != nil {
		sample.SystemAvailable = vm.Available
		sample.SystemUsedPercent = vm.UsedPercent
		sample.HasSystem = true
	}

	return sample
}

// handle 返回缓存的进程句柄，首次调用时解析。解析失败返回 nil，
// 下次采样会重试。
func (s *Sampler) handle(ctx context.Context) *process.Process {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proc != nil {
		return s.proc
	}
	proc, err := newProcess(ctx, s.pid)
	if err != nil {
		return nil
	}
	s.proc = proc
	return proc
}
