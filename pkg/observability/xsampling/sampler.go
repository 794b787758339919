package xsampling

import (
	"context"
	"math"
)

// Sampler 采样策略接口。
//
// 返回 true 表示本次事件应被采样上报，false 表示跳过。
// ctx 可携带采样决策所需的信息（如工作流 ID），供 KeyBasedSampler
// 等策略提取；不得为 nil，占位请用 context.TODO()。
type Sampler interface {
	ShouldSample(ctx context.Context) bool
}

// validateRate 校验采样比率。
func validateRate(rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return ErrInvalidRate
	}
	return nil
}
