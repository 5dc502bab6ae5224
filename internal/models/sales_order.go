package models

// DefaultVariantID 表单初始化时预置的款式 ID
const DefaultVariantID = "1"

// DetailGroup 物料/印花/刺绣等明细块
type DetailGroup struct {
	Category        string `json:"category" validate:"required"`         // 分类
	Material        string `json:"material" validate:"required"`         // 材料
	InputColor      string `json:"input_color" validate:"required"`      // 颜色
	ExpandableInput string `json:"expandable_input" validate:"required"` // 扩展说明
}

// ShippingInfo 运输信息
type ShippingInfo struct {
	Category string `json:"category"` // 运输方式
	Weight   Money  `json:"weight"`   // 重量（kg）
	Price    Money  `json:"price"`    // 运费
}

// LineItem 附加费用或扣减项
type LineItem struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       Money  `json:"price"`
}

// Variant 商品款式（按尺码记录数量）
type Variant struct {
	ID         string         `json:"id"`
	Variant    string         `json:"variant"`
	SubVariant string         `json:"sub_variant"`
	Price      Money          `json:"price"`
	Sizes      map[string]int `json:"sizes"` // 尺码 -> 数量，缺省视为 0
}

// Quantity 返回该款式所有尺码的数量合计
func (v Variant) Quantity() int {
	total := 0
	for _, qty := range v.Sizes {
		total += qty
	}
	return total
}

// FileRef 上传文件引用（内容不由表单解析）
type FileRef struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type,omitempty"`
}

// OrderRecord 销售订单草稿
type OrderRecord struct {
	// 订单基础信息
	Customer   string `json:"customer" validate:"required"`
	Address    string `json:"address" validate:"required"`
	OrderName  string `json:"order_name" validate:"required"`
	Product    string `json:"product" validate:"required"`
	Segment    string `json:"segment" validate:"required"`
	Date       string `json:"date" validate:"required"`
	DuePayment string `json:"due_payment" validate:"required"`
	SPKDate    string `json:"spk_date" validate:"required"`
	Priority   bool   `json:"priority"`

	// 商品明细
	MaterialDetail   DetailGroup `json:"material_detail"`
	ProductNote      string      `json:"product_note" validate:"required"`
	PrintingDetail   DetailGroup `json:"printing_detail"`
	EmbroideryDetail DetailGroup `json:"embroidery_detail"`

	Variants []Variant `json:"variants"`

	Shipping   ShippingInfo `json:"shipping"`
	Additions  []LineItem   `json:"additions"`
	Deductions []LineItem   `json:"deductions"`

	// 付款
	Wallet        string   `json:"wallet"`
	PaymentAmount Money    `json:"payment_amount"`
	PaymentDate   string   `json:"payment_date"`
	Attachment    *FileRef `json:"attachment"`

	// 设计稿
	DesignFile *FileRef `json:"design_file"`
	DesignNote string   `json:"design_note"`
}

// DefaultOrderRecord 返回表单默认快照
func DefaultOrderRecord() OrderRecord {
	return OrderRecord{
		Variants: []Variant{
			{ID: DefaultVariantID, Sizes: map[string]int{}},
		},
		Additions:  []LineItem{},
		Deductions: []LineItem{},
	}
}

// Clone 深拷贝订单草稿
func (r OrderRecord) Clone() OrderRecord {
	out := r
	out.Variants = make([]Variant, len(r.Variants))
	for i, v := range r.Variants {
		sizes := make(map[string]int, len(v.Sizes))
		for size, qty := range v.Sizes {
			sizes[size] = qty
		}
		v.Sizes = sizes
		out.Variants[i] = v
	}
	out.Additions = append(make([]LineItem, 0, len(r.Additions)), r.Additions...)
	out.Deductions = append(make([]LineItem, 0, len(r.Deductions)), r.Deductions...)
	if r.Attachment != nil {
		ref := *r.Attachment
		out.Attachment = &ref
	}
	if r.DesignFile != nil {
		ref := *r.DesignFile
		out.DesignFile = &ref
	}
	return out
}
