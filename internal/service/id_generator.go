package service

import (
	"strconv"
	"sync"

	"github.com/salesorder-next/internal/constants"

	"github.com/google/uuid"
)

// IDGenerator 明细/款式 ID 生成器
type IDGenerator interface {
	NextID() string
}

// SequenceIDGenerator 单调递增 ID 生成器
// 从 start+1 开始发号，避开表单默认款式的 ID
type SequenceIDGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewSequenceIDGenerator 创建递增 ID 生成器
func NewSequenceIDGenerator(start int64) *SequenceIDGenerator {
	if start < 1 {
		start = 1
	}
	return &SequenceIDGenerator{last: start}
}

// NextID 生成下一个 ID
func (g *SequenceIDGenerator) NextID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last++
	return strconv.FormatInt(g.last, 10)
}

// UUIDGenerator 随机 UUID 生成器
type UUIDGenerator struct{}

// NextID 生成下一个 ID
func (UUIDGenerator) NextID() string {
	return uuid.NewString()
}

// NewIDGenerator 按策略创建生成器
func NewIDGenerator(strategy string) IDGenerator {
	if strategy == constants.IDStrategyUUID {
		return UUIDGenerator{}
	}
	return NewSequenceIDGenerator(1)
}
