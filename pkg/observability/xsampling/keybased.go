package xsampling

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
)

// KeyFunc 从上下文中提取采样 key。
//
// 相同的 key 总是产生相同的采样决策。返回空字符串时回退到随机采样，
// 采样率语义近似保持，但失去一致性保证。
type KeyFunc func(ctx context.Context) string

// KeyBasedSampler 基于 key 的一致性采样策略。
//
// 对于相同的 key，在相同的 rate 下总是产生相同的采样决策。
// 典型用法是按工作流 ID 采样：同一次执行产生的所有 span
// 要么全部上报、要么全部丢弃，避免链路残缺。
type KeyBasedSampler struct {
	rate    float64
	keyFunc KeyFunc
}

// NewKeyBasedSampler 创建基于 key 的一致性采样器。
//
// rate 范围 [0.0, 1.0]，超出或为 NaN 返回 [ErrInvalidRate]；
// keyFunc 为 nil 返回 [ErrNilKeyFunc]。
func NewKeyBasedSampler(rate float64, keyFunc KeyFunc) (*KeyBasedSampler, error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	if keyFunc == nil {
		return nil, ErrNilKeyFunc
	}
	return &KeyBasedSampler{rate: rate, keyFunc: keyFunc}, nil
}

func (s *KeyBasedSampler) ShouldSample(ctx context.Context) bool {
	if s.rate <= 0 {
		return false
	}
	if s.rate >= 1 {
		return true
	}

	// nil ctx 与空 key 同等处理：采样能力保持弹性，不因上下文缺失 panic
	if ctx == nil {
		return rand.Float64() < s.rate
	}

	key := s.keyFunc(ctx)
	if key == "" {
		// 空 key 回退到随机采样而非 fail-fast：key 提取失败不应让采样整体失效
		return rand.Float64() < s.rate
	}

	// xxhash 是确定性哈希，同一 key 在所有进程中产生相同哈希值，
	// 归一化到 [0, 1] 后与 rate 比较即得到一致的采样决策。
	// rate >= 1 已提前返回，hashValue == MaxUint64 归一化为 1.0 也不会误通过。
	hashValue := xxhash.Sum64String(key)
	normalized := float64(hashValue) / float64(math.MaxUint64)
	return normalized < s.rate
}

// Rate 返回当前采样比率。
func (s *KeyBasedSampler) Rate() float64 {
	return s.rate
}

// 编译时接口检查
var _ Sampler = (*KeyBasedSampler)(nil)
