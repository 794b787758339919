package xspan

import "sync"

// Sink 是完成记录的上报目的地。
//
// Publish 的实现必须可被任意 goroutine 并发调用，且不得阻塞等待
// 投递确认——投递保证与背压由外部导出通道负责。
type Sink interface {
	// Publish 接收一条完成记录。
	Publish(rec Record)
}

// 编译时接口检查
var (
	_ Sink = (*MemorySink)(nil)
	_ Sink = NoopSink{}
)

// NoopSink 丢弃所有记录。
type NoopSink struct{}

// Publish 空实现，不做任何处理。
func (NoopSink) Publish(Record) {}

// MemorySink 按发布顺序把记录追加到内存切片，用于测试。
type MemorySink struct {
	mu      sync.Mutex
	records []Record
}

// NewMemorySink 创建 MemorySink。
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Publish 追加一条记录。
func (s *MemorySink) Publish(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

// Records 返回已发布记录的副本，顺序与发布顺序一致。
func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len 返回已发布记录数。
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
