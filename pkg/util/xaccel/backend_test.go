package xaccel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetSlot 清空全局槽位。注册语义是进程级一次性的，
// 测试之间需要手工复位。
func resetSlot() {
	backend.Store(nil)
}

type fakeBackend struct {
	available bool
	name      string
	allocated uint64
	reserved  uint64
	panics    bool
}

func (f *fakeBackend) Available() bool { return f.available }
func (f *fakeBackend) DeviceName() string {
	if f.panics {
		panic("driver crashed")
	}
	return f.name
}
func (f *fakeBackend) MemoryAllocated() uint64 { return f.allocated }
func (f *fakeBackend) MemoryReserved() uint64  { return f.reserved }

func TestRegister_FirstWins(t *testing.T) {
	resetSlot()
	t.Cleanup(resetSlot)

	first := &fakeBackend{name: "first"}
	second := &fakeBackend{name: "second"}

	assert.True(t, Register(first))
	assert.False(t, Register(second), "槽位只接受第一次注册")

	got, ok := Registered()
	require.True(t, ok)
	assert.Same(t, first, got.(*fakeBackend))
}

func TestRegister_Nil(t *testing.T) {
	resetSlot()
	t.Cleanup(resetSlot)

	assert.False(t, Register(nil))
	_, ok := Registered()
	assert.False(t, ok)
}

func TestProbe(t *testing.T) {
	t.Run("no backend", func(t *testing.T) {
		resetSlot()
		t.Cleanup(resetSlot)

		_, ok := Probe()
		assert.False(t, ok)
	})

	t.Run("unavailable device", func(t *testing.T) {
		resetSlot()
		t.Cleanup(resetSlot)

		Register(&fakeBackend{available: false})
		_, ok := Probe()
		assert.False(t, ok)
	})

	t.Run("available device", func(t *testing.T) {
		resetSlot()
		t.Cleanup(resetSlot)

		Register(&fakeBackend{
			available: true,
			name:      "NVIDIA A100",
			allocated: 8 << 30,
			reserved:  12 << 30,
		})

		metrics, ok := Probe()
		require.True(t, ok)
		assert.Equal(t, "NVIDIA A100", metrics.DeviceName)
		assert.Equal(t, uint64(8<<30), metrics.Allocated)
		assert.Equal(t, uint64(12<<30), metrics.Reserved)
	})

	t.Run("backend panic suppressed", func(t *testing.T) {
		resetSlot()
		t.Cleanup(resetSlot)

		Register(&fakeBackend{available: true, panics: true})

		assert.NotPanics(t, func() {
			_, ok := Probe()
			assert.False(t, ok, "探测 panic 按设备缺失处理")
		})
	})
}
