package service

import (
	"fmt"
	"strings"

	"github.com/salesorder-next/internal/constants"
	"github.com/salesorder-next/internal/models"
)

// Collection 附加/扣减明细集合
type Collection string

const (
	CollectionAdditions  Collection = constants.CollectionAdditions
	CollectionDeductions Collection = constants.CollectionDeductions
)

// ParseCollection 解析集合名称
func ParseCollection(raw string) (Collection, error) {
	switch Collection(strings.ToLower(strings.TrimSpace(raw))) {
	case CollectionAdditions:
		return CollectionAdditions, nil
	case CollectionDeductions:
		return CollectionDeductions, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrCollectionInvalid, raw)
	}
}

// FormModel 销售订单草稿及其编辑操作
// 非并发安全，由 FormService 按会话加锁
type FormModel struct {
	record    models.OrderRecord
	reference ReferenceData
	ids       IDGenerator
}

// NewFormModel 创建默认状态的表单
func NewFormModel(reference ReferenceData, ids IDGenerator) *FormModel {
	if reference == nil {
		reference = DefaultReferenceData()
	}
	if ids == nil {
		ids = NewSequenceIDGenerator(1)
	}
	return &FormModel{
		record:    models.DefaultOrderRecord(),
		reference: reference,
		ids:       ids,
	}
}

// Snapshot 返回当前草稿的深拷贝
func (m *FormModel) Snapshot() models.OrderRecord {
	return m.record.Clone()
}

// SetReference 替换客户查找表
func (m *FormModel) SetReference(reference ReferenceData) {
	if reference != nil {
		m.reference = reference
	}
}

// SetCustomer 选择客户；未匹配时保留原始编号并清空地址
func (m *FormModel) SetCustomer(customerID string) {
	customer, ok := m.reference.FindCustomer(customerID)
	if !ok {
		m.record.Customer = customerID
		m.record.Address = ""
		return
	}
	m.record.Customer = customer.Name
	m.record.Address = customer.Address
}

// SetField 按路径修改标量字段，如 order_name、shipping.price、materialDetail.inputColor
func (m *FormModel) SetField(path string, value interface{}) error {
	normalized := normalizeFieldPath(path)
	if normalized == "customer" {
		id, err := coerceString(value)
		if err != nil {
			return err
		}
		m.SetCustomer(id)
		return nil
	}
	if err, reserved := recordReservedFields[normalized]; reserved {
		return fmt.Errorf("%w: %s", err, normalized)
	}
	setter, ok := recordFieldSetters[normalized]
	if !ok {
		return unknownField(path)
	}
	// 先在副本上赋值，失败时草稿保持不变
	next := m.record
	if err := setter(&next, value); err != nil {
		return fmt.Errorf("set %s: %w", normalized, err)
	}
	m.record = next
	return nil
}

// FieldUpdate 批量修改中的一项
type FieldUpdate struct {
	Path  string
	Value interface{}
}

// SetFields 依次应用多个字段，任一失败则整批回滚
func (m *FormModel) SetFields(updates []FieldUpdate) error {
	return m.atomically(func() error {
		for _, u := range updates {
			if err := m.SetField(u.Path, u.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetVariantFields 批量修改同一款式的字段，任一失败则整批回滚
func (m *FormModel) SetVariantFields(id string, updates []FieldUpdate) error {
	return m.atomically(func() error {
		for _, u := range updates {
			if err := m.SetVariantField(id, u.Path, u.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateLineItemFields 批量修改同一明细的字段，任一失败则整批回滚
func (m *FormModel) UpdateLineItemFields(collection Collection, id string, updates []FieldUpdate) error {
	return m.atomically(func() error {
		for _, u := range updates {
			if err := m.UpdateLineItem(collection, id, u.Path, u.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (m *FormModel) atomically(fn func() error) error {
	backup := m.record.Clone()
	if err := fn(); err != nil {
		m.record = backup
		return err
	}
	return nil
}

// AddVariant 追加空白款式，返回新款式 ID
func (m *FormModel) AddVariant() string {
	id := m.nextUniqueID(func(candidate string) bool {
		return m.variantIndex(candidate) >= 0
	})
	m.record.Variants = append(m.record.Variants, models.Variant{
		ID:    id,
		Sizes: map[string]int{},
	})
	return id
}

// RemoveVariant 删除款式；只剩一个款式时不做任何处理
func (m *FormModel) RemoveVariant(id string) bool {
	if len(m.record.Variants) <= 1 {
		return false
	}
	idx := m.variantIndex(id)
	if idx < 0 {
		return false
	}
	m.record.Variants = append(m.record.Variants[:idx:idx], m.record.Variants[idx+1:]...)
	return true
}

// SetVariantField 修改款式的 variant / sub_variant / price
func (m *FormModel) SetVariantField(id, field string, value interface{}) error {
	idx := m.variantIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrVariantNotFound, id)
	}
	variant := m.record.Variants[idx]
	switch normalizeFieldPath(field) {
	case "variant":
		s, err := coerceString(value)
		if err != nil {
			return err
		}
		variant.Variant = s
	case "sub_variant":
		s, err := coerceString(value)
		if err != nil {
			return err
		}
		variant.SubVariant = s
	case "price":
		price, err := coerceMoney(value)
		if err != nil {
			return err
		}
		variant.Price = price
	case "id":
		return fmt.Errorf("%w: variant id", ErrFieldReadOnly)
	default:
		return unknownField(field)
	}
	m.record.Variants[idx] = variant
	return nil
}

// SetVariantSize 设置某尺码数量
func (m *FormModel) SetVariantSize(id, size string, quantity interface{}) error {
	idx := m.variantIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrVariantNotFound, id)
	}
	label := strings.ToUpper(strings.TrimSpace(size))
	if !constants.IsSizeLabel(label) {
		return fmt.Errorf("%w: %s", ErrSizeInvalid, size)
	}
	qty, err := coerceQuantity(quantity)
	if err != nil {
		return err
	}
	variant := &m.record.Variants[idx]
	if variant.Sizes == nil {
		variant.Sizes = map[string]int{}
	}
	variant.Sizes[label] = qty
	return nil
}

// AddAddition 追加空白附加费用
func (m *FormModel) AddAddition() string {
	id, _ := m.AddLineItem(CollectionAdditions)
	return id
}

// AddDeduction 追加空白扣减项
func (m *FormModel) AddDeduction() string {
	id, _ := m.AddLineItem(CollectionDeductions)
	return id
}

// RemoveAddition 删除附加费用
func (m *FormModel) RemoveAddition(id string) bool {
	removed, _ := m.RemoveLineItem(CollectionAdditions, id)
	return removed
}

// RemoveDeduction 删除扣减项
func (m *FormModel) RemoveDeduction(id string) bool {
	removed, _ := m.RemoveLineItem(CollectionDeductions, id)
	return removed
}

// AddLineItem 向指定集合追加空白明细
func (m *FormModel) AddLineItem(collection Collection) (string, error) {
	items, err := m.lineItems(collection)
	if err != nil {
		return "", err
	}
	id := m.nextUniqueID(func(candidate string) bool {
		return lineItemIndex(*items, candidate) >= 0
	})
	*items = append(*items, models.LineItem{ID: id})
	return id, nil
}

// RemoveLineItem 删除明细，集合允许为空
func (m *FormModel) RemoveLineItem(collection Collection, id string) (bool, error) {
	items, err := m.lineItems(collection)
	if err != nil {
		return false, err
	}
	idx := lineItemIndex(*items, id)
	if idx < 0 {
		return false, nil
	}
	*items = append((*items)[:idx:idx], (*items)[idx+1:]...)
	return true, nil
}

// UpdateLineItem 修改明细的 category / description / price
func (m *FormModel) UpdateLineItem(collection Collection, id, field string, value interface{}) error {
	items, err := m.lineItems(collection)
	if err != nil {
		return err
	}
	idx := lineItemIndex(*items, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s/%s", ErrLineItemNotFound, collection, id)
	}
	item := (*items)[idx]
	switch normalizeFieldPath(field) {
	case "category":
		s, err := coerceString(value)
		if err != nil {
			return err
		}
		item.Category = s
	case "description":
		s, err := coerceString(value)
		if err != nil {
			return err
		}
		item.Description = s
	case "price":
		price, err := coerceMoney(value)
		if err != nil {
			return err
		}
		item.Price = price
	case "id":
		return fmt.Errorf("%w: line item id", ErrFieldReadOnly)
	default:
		return unknownField(field)
	}
	(*items)[idx] = item
	return nil
}

// SetAttachment 保存付款凭证引用，nil 表示清除
func (m *FormModel) SetAttachment(file *models.FileRef) {
	m.record.Attachment = cloneFileRef(file)
}

// SetDesignFile 保存设计稿引用，nil 表示清除
func (m *FormModel) SetDesignFile(file *models.FileRef) {
	m.record.DesignFile = cloneFileRef(file)
}

// Reset 恢复默认快照
func (m *FormModel) Reset() {
	m.record = models.DefaultOrderRecord()
}

// Totals 基于当前草稿计算合计
func (m *FormModel) Totals() Totals {
	return Summarize(m.record)
}

func (m *FormModel) lineItems(collection Collection) (*[]models.LineItem, error) {
	switch collection {
	case CollectionAdditions:
		return &m.record.Additions, nil
	case CollectionDeductions:
		return &m.record.Deductions, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrCollectionInvalid, collection)
	}
}

func (m *FormModel) variantIndex(id string) int {
	for i, variant := range m.record.Variants {
		if variant.ID == id {
			return i
		}
	}
	return -1
}

// nextUniqueID 跳过集合内已存在的 ID
func (m *FormModel) nextUniqueID(taken func(string) bool) string {
	for {
		id := m.ids.NextID()
		if !taken(id) {
			return id
		}
	}
}

func lineItemIndex(items []models.LineItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func cloneFileRef(file *models.FileRef) *models.FileRef {
	if file == nil {
		return nil
	}
	ref := *file
	return &ref
}
