package xsampling

import (
	"context"
	"math/rand/v2"
)

// alwaysSampler 全采样策略
type alwaysSampler struct{}

var alwaysSamplerInstance = &alwaysSampler{}

// Always 返回全采样策略：所有事件都被采样。
// 适用于调试或低流量环境。
func Always() Sampler {
	return alwaysSamplerInstance
}

func (s *alwaysSampler) ShouldSample(_ context.Context) bool {
	return true
}

// neverSampler 不采样策略
type neverSampler struct{}

var neverSamplerInstance = &neverSampler{}

// Never 返回不采样策略：所有事件都被跳过。
// 用于在配置层面关闭上报而保留插桩。
func Never() Sampler {
	return neverSamplerInstance
}

func (s *neverSampler) ShouldSample(_ context.Context) bool {
	return false
}

// RateSampler 固定比率随机采样策略。
//
// 设计决策: 工厂函数返回具体类型而非 Sampler 接口，Rate() 的自省
// 能力（日志、调试输出）无法通过接口获得。
type RateSampler struct {
	rate float64
}

// NewRateSampler 创建固定比率采样器。
//
// rate 范围 [0.0, 1.0]：0 等同 Never()，1 等同 Always()。
// 超出范围或为 NaN 时返回 [ErrInvalidRate]。
func NewRateSampler(rate float64) (*RateSampler, error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	return &RateSampler{rate: rate}, nil
}

func (s *RateSampler) ShouldSample(_ context.Context) bool {
	if s.rate <= 0 {
		return false
	}
	if s.rate >= 1 {
		return true
	}
	// math/rand/v2 的统计随机性对采样场景足够，无需密码学随机数
	return rand.Float64() < s.rate
}

// Rate 返回当前采样比率。
func (s *RateSampler) Rate() float64 {
	return s.rate
}

// 编译时接口检查
var (
	_ Sampler = (*alwaysSampler)(nil)
	_ Sampler = (*neverSampler)(nil)
	_ Sampler = (*RateSampler)(nil)
)
