package service

import (
	"github.com/salesorder-next/internal/models"

	"github.com/shopspring/decimal"
)

// Totals 订单派生合计，每次从快照重新计算
type Totals struct {
	TotalQuantity    int          `json:"total_quantity"`
	ProductAmount    models.Money `json:"product_amount"`
	ShippingPrice    models.Money `json:"shipping_price"`
	AdditionsTotal   models.Money `json:"additions_total"`
	DeductionsTotal  models.Money `json:"deductions_total"`
	TotalBill        models.Money `json:"total_bill"`
	PaymentAmount    models.Money `json:"payment_amount"`
	RemainingPayment models.Money `json:"remaining_payment"`
}

// Summarize 计算全部合计
func Summarize(record models.OrderRecord) Totals {
	return Totals{
		TotalQuantity:    TotalQuantity(record),
		ProductAmount:    ProductAmount(record),
		ShippingPrice:    record.Shipping.Price,
		AdditionsTotal:   AdditionsTotal(record),
		DeductionsTotal:  DeductionsTotal(record),
		TotalBill:        TotalBill(record),
		PaymentAmount:    record.PaymentAmount,
		RemainingPayment: RemainingPayment(record),
	}
}

// TotalQuantity 所有款式所有尺码数量之和
func TotalQuantity(record models.OrderRecord) int {
	total := 0
	for _, variant := range record.Variants {
		total += variant.Quantity()
	}
	return total
}

// ProductAmount Σ(款式数量 × 单价)
func ProductAmount(record models.OrderRecord) models.Money {
	total := decimal.Zero
	for _, variant := range record.Variants {
		qty := decimal.NewFromInt(int64(variant.Quantity()))
		total = total.Add(qty.Mul(variant.Price.Decimal))
	}
	return models.NewMoneyFromDecimal(total)
}

// AdditionsTotal 附加费用合计
func AdditionsTotal(record models.OrderRecord) models.Money {
	return sumLineItems(record.Additions)
}

// DeductionsTotal 扣减合计
func DeductionsTotal(record models.OrderRecord) models.Money {
	return sumLineItems(record.Deductions)
}

// TotalBill 商品金额 + 运费 + 附加 - 扣减，不做截断
func TotalBill(record models.OrderRecord) models.Money {
	total := ProductAmount(record).Decimal.
		Add(record.Shipping.Price.Decimal).
		Add(AdditionsTotal(record).Decimal).
		Sub(DeductionsTotal(record).Decimal)
	return models.NewMoneyFromDecimal(total)
}

// RemainingPayment 应付 - 已付，超付时为负数
func RemainingPayment(record models.OrderRecord) models.Money {
	return models.NewMoneyFromDecimal(TotalBill(record).Decimal.Sub(record.PaymentAmount.Decimal))
}

func sumLineItems(items []models.LineItem) models.Money {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Decimal)
	}
	return models.NewMoneyFromDecimal(total)
}
