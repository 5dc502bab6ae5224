package service

import (
	"context"
	"sync"
	"time"

	"github.com/salesorder-next/internal/constants"
	"github.com/salesorder-next/internal/logger"
	"github.com/salesorder-next/internal/models"

	"github.com/google/uuid"
)

// ReferenceSnapshotter 提供客户表快照
type ReferenceSnapshotter interface {
	Snapshot(ctx context.Context) (*StaticReferenceData, error)
}

// FormServiceOptions 表单会话配置
type FormServiceOptions struct {
	IDStrategy  string
	SessionTTL  time.Duration
	MaxSessions int
	Now         func() time.Time
}

// FormView 表单当前状态（草稿 + 合计）
type FormView struct {
	SessionID string             `json:"session_id"`
	Record    models.OrderRecord `json:"record"`
	Totals    Totals             `json:"totals"`
	HasResult bool               `json:"has_result"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type formSession struct {
	id        string
	mu        sync.Mutex
	model     *FormModel
	result    ResultSlot
	createdAt time.Time
	touchedAt time.Time
}

// FormService 表单会话服务：每个会话持有一份 FormModel 与一个结果槽
type FormService struct {
	mu        sync.RWMutex
	sessions  map[string]*formSession
	reference ReferenceSnapshotter
	notifier  SubmissionNotifier
	opts      FormServiceOptions
}

// NewFormService 创建表单会话服务
func NewFormService(reference ReferenceSnapshotter, notifier SubmissionNotifier, opts FormServiceOptions) *FormService {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Duration(constants.DefaultFormSessionTTLMin) * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &FormService{
		sessions:  make(map[string]*formSession),
		reference: reference,
		notifier:  notifier,
		opts:      opts,
	}
}

// Create 新建表单会话
func (s *FormService) Create(ctx context.Context) (*FormView, error) {
	now := s.opts.Now()
	session := &formSession{
		id:        uuid.NewString(),
		model:     NewFormModel(s.loadReference(ctx), NewIDGenerator(s.opts.IDStrategy)),
		createdAt: now,
		touchedAt: now,
	}

	s.mu.Lock()
	if s.opts.MaxSessions > 0 && len(s.sessions) >= s.opts.MaxSessions {
		s.mu.Unlock()
		return nil, ErrFormLimitReached
	}
	s.sessions[session.id] = session
	s.mu.Unlock()

	logger.Infow("form_session_created", "session_id", session.id)
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.view(), nil
}

// Get 获取表单当前状态
func (s *FormService) Get(id string) (*FormView, error) {
	return s.mutate(id, func(*FormModel) error { return nil })
}

// Delete 丢弃表单会话
func (s *FormService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrFormNotFound
	}
	delete(s.sessions, id)
	logger.Infow("form_session_deleted", "session_id", id)
	return nil
}

// SetField 修改标量字段
func (s *FormService) SetField(ctx context.Context, id, path string, value interface{}) (*FormView, error) {
	if normalizeFieldPath(path) == "customer" {
		customerID, err := coerceString(value)
		if err != nil {
			return nil, err
		}
		return s.SetCustomer(ctx, id, customerID)
	}
	return s.mutate(id, func(m *FormModel) error {
		return m.SetField(path, value)
	})
}

// SetFields 批量修改标量字段，全部成功才提交
func (s *FormService) SetFields(ctx context.Context, id string, updates []FieldUpdate) (*FormView, error) {
	var reference ReferenceData
	for _, u := range updates {
		if normalizeFieldPath(u.Path) == "customer" {
			reference = s.loadReference(ctx)
			break
		}
	}
	return s.mutate(id, func(m *FormModel) error {
		if reference != nil {
			m.SetReference(reference)
		}
		return m.SetFields(updates)
	})
}

// SetCustomer 选择客户，使用最新的客户表
func (s *FormService) SetCustomer(ctx context.Context, id, customerID string) (*FormView, error) {
	reference := s.loadReference(ctx)
	return s.mutate(id, func(m *FormModel) error {
		if reference != nil {
			m.SetReference(reference)
		}
		m.SetCustomer(customerID)
		return nil
	})
}

// AddVariant 追加款式
func (s *FormService) AddVariant(id string) (*FormView, string, error) {
	var variantID string
	view, err := s.mutate(id, func(m *FormModel) error {
		variantID = m.AddVariant()
		return nil
	})
	return view, variantID, err
}

// RemoveVariant 删除款式，只剩一个时忽略
func (s *FormService) RemoveVariant(id, variantID string) (*FormView, bool, error) {
	var removed bool
	view, err := s.mutate(id, func(m *FormModel) error {
		removed = m.RemoveVariant(variantID)
		return nil
	})
	return view, removed, err
}

// SetVariantField 修改款式字段
func (s *FormService) SetVariantField(id, variantID, field string, value interface{}) (*FormView, error) {
	return s.mutate(id, func(m *FormModel) error {
		return m.SetVariantField(variantID, field, value)
	})
}

// SetVariantFields 批量修改款式字段，全部成功才提交
func (s *FormService) SetVariantFields(id, variantID string, updates []FieldUpdate) (*FormView, error) {
	return s.mutate(id, func(m *FormModel) error {
		return m.SetVariantFields(variantID, updates)
	})
}

// SetVariantSize 设置款式尺码数量
func (s *FormService) SetVariantSize(id, variantID, size string, quantity interface{}) (*FormView, error) {
	return s.mutate(id, func(m *FormModel) error {
		return m.SetVariantSize(variantID, size, quantity)
	})
}

// AddLineItem 追加附加/扣减明细
func (s *FormService) AddLineItem(id string, collection Collection) (*FormView, string, error) {
	var itemID string
	view, err := s.mutate(id, func(m *FormModel) error {
		var err error
		itemID, err = m.AddLineItem(collection)
		return err
	})
	return view, itemID, err
}

// RemoveLineItem 删除明细
func (s *FormService) RemoveLineItem(id string, collection Collection, itemID string) (*FormView, bool, error) {
	var removed bool
	view, err := s.mutate(id, func(m *FormModel) error {
		var err error
		removed, err = m.RemoveLineItem(collection, itemID)
		return err
	})
	return view, removed, err
}

// UpdateLineItem 修改明细字段
func (s *FormService) UpdateLineItem(id string, collection Collection, itemID, field string, value interface{}) (*FormView, error) {
	return s.mutate(id, func(m *FormModel) error {
		return m.UpdateLineItem(collection, itemID, field, value)
	})
}

// UpdateLineItemFields 批量修改明细字段，全部成功才提交
func (s *FormService) UpdateLineItemFields(id string, collection Collection, itemID string, updates []FieldUpdate) (*FormView, error) {
	return s.mutate(id, func(m *FormModel) error {
		return m.UpdateLineItemFields(collection, itemID, updates)
	})
}

// SetAttachment 保存付款凭证
func (s *FormService) SetAttachment(id string, file *models.FileRef) (*FormView, error) {
	return s.mutate(id, func(m *FormModel) error {
		m.SetAttachment(file)
		return nil
	})
}

// SetDesignFile 保存设计稿
func (s *FormService) SetDesignFile(id string, file *models.FileRef) (*FormView, error) {
	return s.mutate(id, func(m *FormModel) error {
		m.SetDesignFile(file)
		return nil
	})
}

// Reset 恢复默认草稿，不影响已提交结果
func (s *FormService) Reset(id string) (*FormView, error) {
	return s.mutate(id, func(m *FormModel) error {
		m.Reset()
		return nil
	})
}

// Submit 校验并提交：写入结果槽，重置草稿，投递通知
func (s *FormService) Submit(ctx context.Context, id, locale string) (*SubmittedOrder, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	record := session.model.Snapshot()
	if err := ValidateOrder(record, locale); err != nil {
		session.mu.Unlock()
		return nil, err
	}
	order := SubmittedOrder{
		Record:      record,
		Totals:      Summarize(record),
		SubmittedAt: s.opts.Now(),
	}
	session.result.Put(order)
	session.model.Reset()
	session.touchedAt = order.SubmittedAt
	session.mu.Unlock()

	log := logger.ForSession(id)
	log.Infow("form_submitted",
		"order_name", record.OrderName,
		"customer", record.Customer,
		"total_quantity", order.Totals.TotalQuantity,
		"total_bill", order.Totals.TotalBill.String(),
	)

	if s.notifier != nil {
		if err := s.notifier.NotifySubmitted(ctx, id, order); err != nil {
			log.Warnw("form_submit_notify_failed", "error", err)
		}
	}
	return &order, nil
}

// Result 读取最近一次提交结果，ok=false 表示暂无数据
func (s *FormService) Result(id string) (SubmittedOrder, bool, error) {
	session, err := s.lookup(id)
	if err != nil {
		return SubmittedOrder{}, false, err
	}
	order, ok := session.result.Get()
	return order, ok, nil
}

// SweepExpired 清理超过 TTL 未访问的会话
func (s *FormService) SweepExpired() int {
	deadline := s.opts.Now().Add(-s.opts.SessionTTL)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		session.mu.Lock()
		expired := session.touchedAt.Before(deadline)
		session.mu.Unlock()
		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Count 当前会话数
func (s *FormService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *FormService) mutate(id string, fn func(m *FormModel) error) (*FormView, error) {
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	if err := fn(session.model); err != nil {
		return nil, err
	}
	session.touchedAt = s.opts.Now()
	return session.view(), nil
}

func (s *FormService) lookup(id string) (*formSession, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrFormNotFound
	}
	return session, nil
}

func (s *FormService) loadReference(ctx context.Context) ReferenceData {
	if s.reference == nil {
		return nil
	}
	snapshot, err := s.reference.Snapshot(ctx)
	if err != nil {
		logger.Warnw("form_reference_snapshot_failed", "error", err)
		return nil
	}
	return snapshot
}

// view 需在持有 session.mu 时调用
func (session *formSession) view() *FormView {
	_, hasResult := session.result.Get()
	record := session.model.Snapshot()
	return &FormView{
		SessionID: session.id,
		Record:    record,
		Totals:    Summarize(record),
		HasResult: hasResult,
		CreatedAt: session.createdAt,
		UpdatedAt: session.touchedAt,
	}
}
