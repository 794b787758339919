package xproc

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampler_Sample_CurrentProcess(t *testing.T) {
	s := NewSampler()
	sample := s.Sample(t.Context())

	// 对自身进程采样应当成功；数值因环境而异，只断言存在性与基本合理性
	require.True(t, sample.HasProcess)
	assert.Positive(t, sample.RSS)
	assert.GreaterOrEqual(t, sample.VMS, sample.RSS)

	require.True(t, sample.HasSystem)
	assert.Positive(t, sample.SystemAvailable)
	assert.GreaterOrEqual(t, sample.SystemUsedPercent, 0.0)
	assert.LessOrEqual(t, sample.SystemUsedPercent, 100.0)

	require.True(t, sample.HasCPU)
	assert.GreaterOrEqual(t, sample.CPUPercent, 0.0)
}

func TestSampler_Sample_ProcessAbsent(t *testing.T) {
	origNewProcess := newProcess
	t.Cleanup(func() { newProcess = origNewProcess })
	newProcess = func(ctx context.Context, pid int32) (*process.Process, error) {
		return nil, errors.New("process gone")
	}

	s := NewSampler()
	sample := s.Sample(t.Context())

	// 进程部分缺失不是错误，系统部分不受影响
	assert.False(t, sample.HasProcess)
	assert.False(t, sample.HasCPU)
	assert.True(t, sample.HasSystem)
}

func TestSampler_Sample_SystemAbsent(t *testing.T) {
	origVirtualMemory := virtualMemory
	t.Cleanup(func() { virtualMemory = origVirtualMemory })
	virtualMemory = func(ctx context.Context) (*mem.VirtualMemoryStat, error) {
		return nil, errors.New("sysinfo unavailable")
	}

	s := NewSampler()
	sample := s.Sample(t.Context())

	assert.False(t, sample.HasSystem)
	assert.True(t, sample.HasProcess, "进程部分不受系统部分失败影响")
}

func TestSampler_HandleRetriesAfterFailure(t *testing.T) {
	origNewProcess := newProcess
	t.Cleanup(func() { newProcess = origNewProcess })

	calls := 0
	newProcess = func(ctx context.Context, pid int32) (*process.Process, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient failure")
		}
		return process.NewProcessWithContext(ctx, pid)
	}

	s := NewSampler()
	first := s.Sample(t.Context())
	assert.False(t, first.HasProcess)

	second := s.Sample(t.Context())
	assert.True(t, second.HasProcess, "句柄解析失败后下次采样应重试")
	assert.Equal(t, 2, calls)
}
