package xaccel

import "sync/atomic"

// Backend 加速设备指标的能力接口。
//
// 实现必须并发安全；Available 返回 false 时其余方法不会被调用。
type Backend interface {
	// Available 判断设备当前是否可用。
	Available() bool

	// DeviceName 返回设备名称（如 "NVIDIA A100"）。
	DeviceName() string

	// MemoryAllocated 返回已分配的设备内存（字节）。
	MemoryAllocated() uint64

	// MemoryReserved 返回已预留的设备内存（字节）。
	MemoryReserved() uint64
}

// Metrics 一次设备内存探测的结果。
type Metrics struct {
	// DeviceName 设备名称。
	DeviceName string
	// Allocated 已分配设备内存（字节）。
	Allocated uint64
	// Reserved 已预留设备内存（字节）。
	Reserved uint64
}

// backend 全局能力槽位。注册一次即冻结。
var backend atomic.Pointer[Backend]

// Register 注册加速设备后端。
//
// 只有第一次注册生效，返回 true；槽位已被占用或 b 为 nil 时
// 返回 false。
func Register(b Backend) bool {
	if b == nil {
		return false
	}
	return backend.CompareAndSwap(nil, &b)
}

// Registered 返回已注册的后端。
func Registered() (Backend, bool) {
	p := backend.Load()
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Probe 探测设备内存指标。
//
// 未注册后端、设备不可用、后端实现 panic 时返回 ok=false；
// panic 被 recover 吞掉，设备探测失败永不传播到调用方。
func Probe() (metrics Metrics, ok bool) {
	b, registered := Registered()
	if !registered {
		return Metrics{}, false
	}

	defer func() {
		if recover() != nil {
			metrics = Metrics{}
			ok = false
		}
	}()

	if !b.Available() {
		return Metrics{}, false
	}
	return Metrics{
		DeviceName: b.DeviceName(),
		Allocated:  b.MemoryAllocated(),
		Reserved:   b.MemoryReserved(),
	}, true
}
