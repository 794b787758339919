package xspan

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Span 表示一次被追踪的操作。
//
// Span 归执行该操作的调用方独占；标签/指标的写入遵循
// write-once-per-key 语义（同 key 后写覆盖先写，不支持删除）。
//
// 设计决策: Span 仍然持有一把小锁，而非完全依赖"单一归属"约定。
// 关闭恰好一次、关闭后拒绝修改这两条不变量的代价只是无竞争的
// mutex 操作，却能把误用（例如 defer 与显式 Close 同时触发）
// 从数据竞争降级为确定的 [ErrSpanClosed]。
type Span struct {
	mu       sync.Mutex
	id       string
	name     string
	resource string
	tags     map[string]any
	metrics  map[string]float64
	start    time.Time
	end      time.Time
	status   Status
	errKind  string
	errMsg   string
	closed   bool
	sink     Sink
}

// Open 创建并打开一个 Span，起始时间为当前时刻，状态为 pending。
//
// sink 为 nil 时回退到 [NoopSink]，保证 Close 永远可以安全调用。
func Open(name, resource string, sink Sink) *Span {
	if sink == nil {
		sink = NoopSink{}
	}
	return &Span{
		id:       uuid.NewString(),
		name:     name,
		resource: resource,
		tags:     make(map[string]any),
		metrics:  make(map[string]float64),
		start:    time.Now(),
		status:   StatusPending,
		sink:     sink,
	}
}

// ID 返回 Span 的唯一标识。
func (s *Span) ID() string { return s.id }

// Name 返回操作名称。
func (s *Span) Name() string { return s.name }

// Resource 返回资源标签。
func (s *Span) Resource() string { return s.resource }

// Status 返回当前状态。
func (s *Span) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SetTag 写入单个标签。同 key 的后写覆盖先写。
// Span 已关闭时返回 [ErrSpanClosed]，key 为空时返回 [ErrEmptyKey]。
func (s *Span) SetTag(key string, value any) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSpanClosed
	}
	s.tags[key] = value
	return nil
}

// SetTags 批量写入标签，语义与逐个调用 SetTag 相同。
//
// 设计决策: 遇到空 key 时整批拒绝而非部分写入，
// 让调用方拿到确定的"全有或全无"结果，便于定位构造错误。
func (s *Span) SetTags(tags map[string]any) error {
	for key := range tags {
		if key == "" {
			return ErrEmptyKey
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSpanClosed
	}
	for key, value := range tags {
		s.tags[key] = value
	}
	return nil
}

// SetMetric 写入单个数值指标。同 key 的后写覆盖先写。
func (s *Span) SetMetric(key string, value float64) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSpanClosed
	}
	s.metrics[key] = value
	return nil
}

// SetMetrics 批量写入数值指标，语义与逐个调用 SetMetric 相同。
func (s *Span) SetMetrics(metrics map[string]float64) error {
	for key := range metrics {
		if key == "" {
			return ErrEmptyKey
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSpanClosed
	}
	for key, value := range metrics {
		s.metrics[key] = value
	}
	return nil
}

// Close 关闭 Span：固定结束时间、落定终态，并把生成的 Record
// 恰好一次交给 Sink。重复关闭返回 [ErrSpanClosed]。
//
// status 非终态（含 pending/空值）时按 err 推导：err 非 nil 为 error，
// 否则为 success。err 非 nil 时在记录上填充错误类型与消息。
//
// Close 自身不计算任何派生值（如资源增量），这些是调用方的职责。
func (s *Span) Close(status Status, err error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSpanClosed
	}
	s.closed = true
	s.end = time.Now()

	if !status.IsTerminal() {
		if err != nil {
			status = StatusError
		} else {
			status = StatusSuccess
		}
	}
	s.status = status
	if err != nil {
		s.errKind = fmt.Sprintf("%T", err)
		s.errMsg = err.Error()
	}

	rec := s.snapshotLocked()
	sink := s.sink
	s.mu.Unlock()

	// 锁外发布：Sink 可能做任意量级的工作，不在临界区内持有。
	sink.Publish(rec)
	return nil
}

// snapshotLocked 生成 Record 副本，调用方必须持有 s.mu。
func (s *Span) snapshotLocked() Record {
	tags := make(map[string]any, len(s.tags))
	for k, v := range s.tags {
		tags[k] = v
	}
	metrics := make(map[string]float64, len(s.metrics))
	for k, v := range s.metrics {
		metrics[k] = v
	}
	return Record{
		SpanID:       s.id,
		Name:         s.name,
		Resource:     s.resource,
		Tags:         tags,
		Metrics:      metrics,
		Start:        s.start,
		End:          s.end,
		Status:       s.status,
		ErrorKind:    s.errKind,
		ErrorMessage: s.errMsg,
	}
}
