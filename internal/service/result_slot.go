package service

import (
	"sync"
	"time"

	"github.com/salesorder-next/internal/models"
)

// SubmittedOrder 已提交订单的只读结果
type SubmittedOrder struct {
	Record      models.OrderRecord `json:"record"`
	Totals      Totals             `json:"totals"`
	SubmittedAt time.Time          `json:"submitted_at"`
}

// ResultSlot 单槽结果通道：提交写入，结果页读取
// 未提交过时处于“无数据”状态
type ResultSlot struct {
	mu     sync.RWMutex
	result *SubmittedOrder
}

// Put 写入最新结果，覆盖旧值
func (s *ResultSlot) Put(result SubmittedOrder) {
	result.Record = result.Record.Clone()
	s.mu.Lock()
	s.result = &result
	s.mu.Unlock()
}

// Get 读取结果，ok=false 表示暂无数据
func (s *ResultSlot) Get() (SubmittedOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return SubmittedOrder{}, false
	}
	out := *s.result
	out.Record = out.Record.Clone()
	return out, true
}

// Clear 清空结果
func (s *ResultSlot) Clear() {
	s.mu.Lock()
	s.result = nil
	s.mu.Unlock()
}
