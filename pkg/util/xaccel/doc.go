// Package xaccel 提供加速设备（GPU 等）内存指标的能力接入点。
//
// # 设计理念
//
// 核心代码不依赖任何设备 SDK。持有设备访问能力的宿主（如 CUDA
// 绑定层）在启动时通过 [Register] 注入一个 [Backend] 实现，观测层
// 通过 [Probe] 读取设备内存指标。
//
// 未注册、设备不可用、探测 panic 都是正常结局：Probe 返回
// ok=false，调用方跳过加速指标即可。设备探测失败永不影响宿主操作。
//
// # 注册语义
//
// 全局槽位只接受第一次注册，后续注册被忽略（返回 false）。
// 进程存续期间不可注销。
package xaccel
