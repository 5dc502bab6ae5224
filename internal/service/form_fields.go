package service

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/salesorder-next/internal/models"
)

type recordFieldSetter func(r *models.OrderRecord, value interface{}) error

// 可通过 SetField 直接修改的标量字段
var recordFieldSetters = buildRecordFieldSetters()

// 只读或需走专用操作的字段
var recordReservedFields = map[string]error{
	"address":     ErrFieldReadOnly,
	"variants":    ErrFieldUnknown,
	"additions":   ErrFieldUnknown,
	"deductions":  ErrFieldUnknown,
	"attachment":  ErrFieldUnknown,
	"design_file": ErrFieldUnknown,
}

func buildRecordFieldSetters() map[string]recordFieldSetter {
	setters := map[string]recordFieldSetter{
		"order_name":        textSetter(func(r *models.OrderRecord) *string { return &r.OrderName }),
		"product":           textSetter(func(r *models.OrderRecord) *string { return &r.Product }),
		"segment":           textSetter(func(r *models.OrderRecord) *string { return &r.Segment }),
		"date":              textSetter(func(r *models.OrderRecord) *string { return &r.Date }),
		"due_payment":       textSetter(func(r *models.OrderRecord) *string { return &r.DuePayment }),
		"spk_date":          textSetter(func(r *models.OrderRecord) *string { return &r.SPKDate }),
		"product_note":      textSetter(func(r *models.OrderRecord) *string { return &r.ProductNote }),
		"shipping.category": textSetter(func(r *models.OrderRecord) *string { return &r.Shipping.Category }),
		"wallet":            textSetter(func(r *models.OrderRecord) *string { return &r.Wallet }),
		"payment_date":      textSetter(func(r *models.OrderRecord) *string { return &r.PaymentDate }),
		"design_note":       textSetter(func(r *models.OrderRecord) *string { return &r.DesignNote }),
		"shipping.weight":   moneySetter(func(r *models.OrderRecord) *models.Money { return &r.Shipping.Weight }),
		"shipping.price":    moneySetter(func(r *models.OrderRecord) *models.Money { return &r.Shipping.Price }),
		"payment_amount":    moneySetter(func(r *models.OrderRecord) *models.Money { return &r.PaymentAmount }),
		"priority": func(r *models.OrderRecord, value interface{}) error {
			b, err := coerceBool(value)
			if err != nil {
				return err
			}
			r.Priority = b
			return nil
		},
	}
	groups := map[string]func(r *models.OrderRecord) *models.DetailGroup{
		"material_detail":   func(r *models.OrderRecord) *models.DetailGroup { return &r.MaterialDetail },
		"printing_detail":   func(r *models.OrderRecord) *models.DetailGroup { return &r.PrintingDetail },
		"embroidery_detail": func(r *models.OrderRecord) *models.DetailGroup { return &r.EmbroideryDetail },
	}
	for name, group := range groups {
		group := group
		setters[name+".category"] = textSetter(func(r *models.OrderRecord) *string { return &group(r).Category })
		setters[name+".material"] = textSetter(func(r *models.OrderRecord) *string { return &group(r).Material })
		setters[name+".input_color"] = textSetter(func(r *models.OrderRecord) *string { return &group(r).InputColor })
		setters[name+".expandable_input"] = textSetter(func(r *models.OrderRecord) *string { return &group(r).ExpandableInput })
	}
	return setters
}

func textSetter(field func(r *models.OrderRecord) *string) recordFieldSetter {
	return func(r *models.OrderRecord, value interface{}) error {
		s, err := coerceString(value)
		if err != nil {
			return err
		}
		*field(r) = s
		return nil
	}
}

func moneySetter(field func(r *models.OrderRecord) *models.Money) recordFieldSetter {
	return func(r *models.OrderRecord, value interface{}) error {
		m, err := coerceMoney(value)
		if err != nil {
			return err
		}
		*field(r) = m
		return nil
	}
}

// EditableFieldPaths 返回 SetField 支持的字段路径
func EditableFieldPaths() []string {
	paths := make([]string, 0, len(recordFieldSetters)+1)
	paths = append(paths, "customer")
	for path := range recordFieldSetters {
		paths = append(paths, path)
	}
	return paths
}

// normalizeFieldPath 统一字段路径：orderName / materialDetail.inputColor -> snake_case
func normalizeFieldPath(path string) string {
	parts := strings.Split(strings.TrimSpace(path), ".")
	for i, part := range parts {
		parts[i] = toSnakeCase(strings.TrimSpace(part))
	}
	return strings.Join(parts, ".")
}

func toSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '-' || r == ' ' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func unknownField(path string) error {
	return fmt.Errorf("%w: %s", ErrFieldUnknown, path)
}
