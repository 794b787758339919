package xspan

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// RecentSink 保留最近 capacity 条记录用于诊断，可选级联下游 Sink。
//
// 设计决策: 用 LRU 缓存而非环形缓冲，淘汰策略与容量控制直接复用
// 成熟实现；key 为 SpanID，天然去重（同一 Span 恰好发布一次，
// 重复 key 只可能来自上游误用，覆盖语义是安全的）。
type RecentSink struct {
	cache *lru.Cache[string, Record]
	next  Sink
}

// 编译时接口检查
var _ Sink = (*RecentSink)(nil)

// NewRecentSink 创建 RecentSink。
// capacity 必须为正数，否则返回 [ErrInvalidCapacity]。
// next 为 nil 时仅做本地缓存，不级联。
func NewRecentSink(capacity int, next Sink) (*RecentSink, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	cache, err := lru.New[string, Record](capacity)
	if err != nil {
		return nil, err
	}
	return &RecentSink{cache: cache, next: next}, nil
}

// Publish 缓存记录并转发给下游（若配置了下游）。
func (s *RecentSink) Publish(rec Record) {
	s.cache.Add(rec.SpanID, rec)
	if s.next != nil {
		s.next.Publish(rec)
	}
}

// Records 返回缓存中的记录，从最旧到最新。
func (s *RecentSink) Records() []Record {
	return s.cache.Values()
}

// Len 返回缓存中的记录数。
func (s *RecentSink) Len() int {
	return s.cache.Len()
}
